package models

// RosterEvent is published on the room's roster channel after every presence
// change. Carries the full occupant set so consumers replace, never merge.
type RosterEvent struct {
	RoomID string       `json:"roomId"`
	Users  []ActiveUser `json:"users"`
}

// MessageEvent is published on the room's message channel after a message is
// stored.
type MessageEvent struct {
	RoomID  string  `json:"roomId"`
	Message ChatLog `json:"message"`
}

// SessionEvent is what a room or lobby session emits toward its socket client
type SessionEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Socket event names emitted to clients
const (
	EventChatLog          = "chatLog"
	EventRooms            = "rooms"
	EventConfessionOffer  = "confessionOffer"
	EventCountdown        = "countdown"
	EventConfessionClosed = "confessionClosed"
	EventReplyOffer       = "replyOffer"
)
