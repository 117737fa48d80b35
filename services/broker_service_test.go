package services

import (
	"encoding/json"
	"testing"
	"time"

	"unmei_server/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterPumpForwardsAndClosesWithSource(t *testing.T) {
	in := make(chan *redis.Message, 1)
	out := make(chan models.RosterEvent, 1)
	quit := make(chan struct{})
	go pumpRosterEvents(in, out, quit)

	payload, err := json.Marshal(models.RosterEvent{RoomID: "2"})
	require.NoError(t, err)
	in <- &redis.Message{Payload: string(payload)}

	select {
	case event := <-out:
		assert.Equal(t, "2", event.RoomID)
	case <-time.After(time.Second):
		t.Fatal("pump never forwarded the event")
	}

	close(in)
	select {
	case _, ok := <-out:
		assert.False(t, ok, "out should close once the source closes")
	case <-time.After(time.Second):
		t.Fatal("out never closed after the source closed")
	}
}

func TestMessagePumpSkipsBadPayloads(t *testing.T) {
	in := make(chan *redis.Message, 2)
	out := make(chan models.MessageEvent, 1)
	quit := make(chan struct{})
	go pumpMessageEvents(in, out, quit)

	in <- &redis.Message{Payload: "not json"}
	payload, err := json.Marshal(models.MessageEvent{RoomID: "3"})
	require.NoError(t, err)
	in <- &redis.Message{Payload: string(payload)}

	select {
	case event := <-out:
		assert.Equal(t, "3", event.RoomID)
	case <-time.After(time.Second):
		t.Fatal("pump never got past the bad payload")
	}
	close(in)
}

// A pump parked on a send to a reader that already went away must still
// exit when the subscription is torn down.
func TestMessagePumpUnblocksOnQuit(t *testing.T) {
	in := make(chan *redis.Message)
	out := make(chan models.MessageEvent)
	quit := make(chan struct{})

	finished := make(chan struct{})
	go func() {
		pumpMessageEvents(in, out, quit)
		close(finished)
	}()

	payload, err := json.Marshal(models.MessageEvent{RoomID: "1"})
	require.NoError(t, err)
	in <- &redis.Message{Payload: string(payload)}

	// Nobody reads out, so the pump is parked on the send.
	close(quit)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump kept running after quit")
	}
}

func TestRosterPumpUnblocksOnQuit(t *testing.T) {
	in := make(chan *redis.Message)
	out := make(chan models.RosterEvent)
	quit := make(chan struct{})

	finished := make(chan struct{})
	go func() {
		pumpRosterEvents(in, out, quit)
		close(finished)
	}()

	payload, err := json.Marshal(models.RosterEvent{RoomID: "4"})
	require.NoError(t, err)
	in <- &redis.Message{Payload: string(payload)}
	close(quit)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump kept running after quit")
	}
}
