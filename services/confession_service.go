package services

import "unmei_server/models"

// FlowState enumerates the confession flow states
type FlowState int

const (
	// FlowIdle - no modal is open
	FlowIdle FlowState = iota
	// FlowConfessionOffered - the confession modal is open and counting down
	FlowConfessionOffered
	// FlowReplyOffered - a confession arrived and the reply modal is open
	FlowReplyOffered
)

// ConfessionFlow drives the timed confession modal and the reciprocal reply
// modal for one room session. Transitions are synchronous; the owning session
// supplies the 30-second offer timer and the 1 Hz countdown ticks, so the
// machine itself stays deterministic. Nothing here is persisted.
type ConfessionFlow struct {
	State     FlowState
	Countdown int
}

func NewConfessionFlow() *ConfessionFlow {
	return &ConfessionFlow{
		State:     FlowIdle,
		Countdown: models.ConfessionCountdownStart,
	}
}

// Offer opens the confession modal. The recurring timer calls this blindly
// every interval; it only takes effect from Idle. A pending reply modal is
// not preempted.
func (f *ConfessionFlow) Offer() bool {
	if f.State != FlowIdle {
		return false
	}
	f.State = FlowConfessionOffered
	f.Countdown = models.ConfessionCountdownStart
	return true
}

// Tick consumes one countdown second while the confession modal is open.
// Reaching zero closes the modal with no message sent and reports expiry.
func (f *ConfessionFlow) Tick() (expired bool) {
	if f.State != FlowConfessionOffered {
		return false
	}
	f.Countdown--
	if f.Countdown > 0 {
		return false
	}
	f.State = FlowIdle
	f.Countdown = models.ConfessionCountdownStart
	return true
}

// ConfirmConfession is the user pressing send on the open confession modal.
// Returns the scripted confession text to emit, and resets the countdown.
func (f *ConfessionFlow) ConfirmConfession() (string, bool) {
	if f.State != FlowConfessionOffered {
		return "", false
	}
	f.State = FlowIdle
	f.Countdown = models.ConfessionCountdownStart
	return models.ConfessionMessage, true
}

// DismissConfession closes the confession modal without sending
func (f *ConfessionFlow) DismissConfession() bool {
	if f.State != FlowConfessionOffered {
		return false
	}
	f.State = FlowIdle
	f.Countdown = models.ConfessionCountdownStart
	return true
}

// OfferReply opens the reply modal in response to an observed confession.
// It preempts an open confession offer: the incoming confession wins.
func (f *ConfessionFlow) OfferReply() bool {
	if f.State == FlowReplyOffered {
		return false
	}
	f.State = FlowReplyOffered
	f.Countdown = models.ConfessionCountdownStart
	return true
}

// ConfirmReply is the user answering the confession. Returns the scripted
// reply text to emit.
func (f *ConfessionFlow) ConfirmReply() (string, bool) {
	if f.State != FlowReplyOffered {
		return "", false
	}
	f.State = FlowIdle
	return models.ConfessionReplyMessage, true
}

// DismissReply closes the reply modal without answering
func (f *ConfessionFlow) DismissReply() bool {
	if f.State != FlowReplyOffered {
		return false
	}
	f.State = FlowIdle
	return true
}
