package services

import "unmei_server/models"

// MessageReducer folds the live message feed of one room into a display log.
// The initial snapshot is suppressed entirely so history does not replay as
// new events; only additions after that are appended, in arrival order. It
// also detects unconsumed confessions addressed to someone else and signals
// the reply offer at most once per message per session.
type MessageReducer struct {
	selfName  string
	loaded    bool
	logs      []models.ChatLog
	triggered map[string]bool
}

func NewMessageReducer(selfName string) *MessageReducer {
	return &MessageReducer{
		selfName:  selfName,
		triggered: make(map[string]bool),
	}
}

// SeedSnapshot records the entries present before the session started
// listening. They are deliberately not appended to the display log.
func (r *MessageReducer) SeedSnapshot(entries []models.ChatLog) {
	for _, entry := range entries {
		// History never re-triggers a reply offer either.
		r.triggered[entry.MessageID] = true
	}
	r.loaded = true
}

// Loaded reports whether the initial snapshot has been consumed
func (r *MessageReducer) Loaded() bool {
	return r.loaded
}

// Reduce folds one newly added entry. Returns whether it was appended to the
// display log and whether it should open the reply modal.
func (r *MessageReducer) Reduce(entry models.ChatLog) (appended bool, triggerReply bool) {
	if !r.loaded {
		// Additions racing the seed are treated as part of the initial snapshot.
		r.triggered[entry.MessageID] = true
		return false, false
	}

	r.logs = append(r.logs, entry)

	if IsConfessionMessage(entry, r.selfName) && !r.triggered[entry.MessageID] {
		r.triggered[entry.MessageID] = true
		return true, true
	}
	return true, false
}

// Logs returns the display log accumulated so far
func (r *MessageReducer) Logs() []models.ChatLog {
	return r.logs
}

// IsConfessionMessage reports whether an entry is a confession that should
// open the reply modal for the given observer: the scripted phrase, from
// another sender, not yet consumed, and not a system announce.
func IsConfessionMessage(entry models.ChatLog, currentUserName string) bool {
	return entry.Msg == models.ConfessionMessage &&
		entry.Name != currentUserName &&
		!entry.ModalOpenFlag &&
		!entry.AnnounceFlag
}
