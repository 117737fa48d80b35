package services_test

import (
	"testing"

	"unmei_server/models"
	"unmei_server/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfessionCountdownTimeout: a full countdown closes the modal with no
// message and resets to the starting value.
func TestConfessionCountdownTimeout(t *testing.T) {
	flow := services.NewConfessionFlow()
	require.True(t, flow.Offer())
	assert.Equal(t, services.FlowConfessionOffered, flow.State)
	assert.Equal(t, 10, flow.Countdown)

	for i := 0; i < 9; i++ {
		assert.False(t, flow.Tick(), "tick %d should not expire", i+1)
	}
	assert.True(t, flow.Tick(), "tenth tick reaches zero")

	assert.Equal(t, services.FlowIdle, flow.State)
	assert.Equal(t, 10, flow.Countdown)
}

// TestConfessionConfirm: confirming before expiry yields exactly one scripted
// message and resets the countdown.
func TestConfessionConfirm(t *testing.T) {
	flow := services.NewConfessionFlow()
	require.True(t, flow.Offer())
	flow.Tick()
	flow.Tick()
	assert.Equal(t, 8, flow.Countdown)

	msg, ok := flow.ConfirmConfession()
	require.True(t, ok)
	assert.Equal(t, models.ConfessionMessage, msg)
	assert.Equal(t, services.FlowIdle, flow.State)
	assert.Equal(t, 10, flow.Countdown)

	// The modal is closed; a second confirm emits nothing.
	_, ok = flow.ConfirmConfession()
	assert.False(t, ok)
}

// TestOfferOnlyFromIdle: the recurring timer fires blindly, so Offer must be
// a no-op while either modal is already open.
func TestOfferOnlyFromIdle(t *testing.T) {
	flow := services.NewConfessionFlow()
	require.True(t, flow.Offer())
	assert.False(t, flow.Offer())

	flow = services.NewConfessionFlow()
	require.True(t, flow.OfferReply())
	assert.False(t, flow.Offer())
	assert.Equal(t, services.FlowReplyOffered, flow.State)
}

// TestReplyPreemptsConfession: an incoming confession wins over an open
// confession offer, and the countdown stops ticking.
func TestReplyPreemptsConfession(t *testing.T) {
	flow := services.NewConfessionFlow()
	require.True(t, flow.Offer())
	require.True(t, flow.OfferReply())

	assert.Equal(t, services.FlowReplyOffered, flow.State)
	assert.False(t, flow.Tick())

	msg, ok := flow.ConfirmReply()
	require.True(t, ok)
	assert.Equal(t, models.ConfessionReplyMessage, msg)
	assert.Equal(t, services.FlowIdle, flow.State)
}

func TestReplyDismiss(t *testing.T) {
	flow := services.NewConfessionFlow()
	require.True(t, flow.OfferReply())
	assert.True(t, flow.DismissReply())

	assert.Equal(t, services.FlowIdle, flow.State)
	_, ok := flow.ConfirmReply()
	assert.False(t, ok)
}

func TestConfessionDismiss(t *testing.T) {
	flow := services.NewConfessionFlow()
	require.True(t, flow.Offer())
	flow.Tick()
	assert.True(t, flow.DismissConfession())

	assert.Equal(t, services.FlowIdle, flow.State)
	assert.Equal(t, 10, flow.Countdown)
}
