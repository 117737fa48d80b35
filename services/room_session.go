package services

import (
	"context"
	"log"
	"sync"
	"time"

	"unmei_server/models"
)

// RoomSession is the server-side counterpart of one client sitting in a chat
// room. It owns everything that must die together when the user leaves: the
// presence record, the message subscription, the confession offer timer and
// the countdown ticker. Close releases all of them exactly once, on every
// exit path.
type RoomSession struct {
	RoomID  string
	Profile models.UserProfile

	// Events carries what the gateway should emit to the client
	Events chan models.SessionEvent

	Presence *PresenceService
	Messages *MessageService
	Broker   *Broker

	mu      sync.Mutex
	flow    *ConfessionFlow
	reducer *MessageReducer

	// OfferInterval and CountdownInterval default to production values;
	// tests shrink them.
	OfferInterval     time.Duration
	CountdownInterval time.Duration

	sub       *MessageSubscription
	done      chan struct{}
	running   sync.WaitGroup
	closeOnce sync.Once
}

func NewRoomSession(roomID string, profile models.UserProfile, presence *PresenceService, messages *MessageService, broker *Broker) *RoomSession {
	return &RoomSession{
		RoomID:   roomID,
		Profile:  profile,
		Events:   make(chan models.SessionEvent, 16),
		Presence: presence,
		Messages: messages,
		Broker:   broker,
		flow:     NewConfessionFlow(),
		reducer:  NewMessageReducer(profile.Name),
		done:     make(chan struct{}),

		OfferInterval:     models.ConfessionOfferInterval,
		CountdownInterval: time.Second,
	}
}

// Start registers presence, announces the entry, seeds the reducer with the
// current history and begins listening. The subscription opens before the
// history read so nothing can slip between the two; anything the feed
// delivers before the seed lands is treated as part of the initial snapshot.
func (s *RoomSession) Start(ctx context.Context) error {
	if err := s.Presence.EnterRoom(ctx, s.RoomID, s.Profile); err != nil {
		return err
	}

	if _, err := s.Messages.AppendAnnounce(ctx, s.RoomID, s.Profile.Name); err != nil {
		log.Printf("Failed to announce %s entering room %s: %v", s.Profile.Name, s.RoomID, err)
	}

	s.sub = s.Broker.SubscribeMessages(ctx, s.RoomID)

	history, err := s.Messages.RecentMessages(ctx, s.RoomID, models.RecentMessageLimit)
	if err != nil {
		log.Printf("Failed to load history for room %s: %v", s.RoomID, err)
	}
	s.mu.Lock()
	s.reducer.SeedSnapshot(history)
	s.mu.Unlock()

	s.running.Add(1)
	go s.run(ctx)
	return nil
}

func (s *RoomSession) run(ctx context.Context) {
	defer s.running.Done()

	offerTimer := time.NewTicker(s.OfferInterval)
	defer offerTimer.Stop()

	// The countdown ticker lives only while the confession modal is open.
	// Starting it at offer time gives the modal its full first second
	// instead of whatever remains of a free-running tick.
	var countdownTicker *time.Ticker
	var countdownC <-chan time.Time
	stopCountdown := func() {
		if countdownTicker != nil {
			countdownTicker.Stop()
			countdownTicker = nil
			countdownC = nil
		}
	}
	defer stopCountdown()

	feed := s.sub.C

	for {
		select {
		case <-s.done:
			return

		case <-offerTimer.C:
			s.mu.Lock()
			offered := s.flow.Offer()
			countdown := s.flow.Countdown
			s.mu.Unlock()
			if offered {
				stopCountdown()
				countdownTicker = time.NewTicker(s.CountdownInterval)
				countdownC = countdownTicker.C
				s.emit(models.EventConfessionOffer, map[string]int{"countdown": countdown})
			}

		case <-countdownC:
			s.mu.Lock()
			expired := s.flow.Tick()
			counting := s.flow.State == FlowConfessionOffered
			countdown := s.flow.Countdown
			s.mu.Unlock()
			if expired {
				stopCountdown()
				s.emit(models.EventConfessionClosed, nil)
			} else if counting {
				s.emit(models.EventCountdown, map[string]int{"countdown": countdown})
			} else {
				// Modal already closed by a confirm, dismiss or reply offer.
				stopCountdown()
			}

		case event, ok := <-feed:
			if !ok {
				// Subscription stalled or torn down; the session keeps its
				// timers but sees no further messages.
				log.Printf("Message feed closed for room %s (user %s)", s.RoomID, s.Profile.Name)
				feed = nil
				continue
			}
			s.handleMessage(ctx, event.Message)
		}
	}
}

func (s *RoomSession) handleMessage(ctx context.Context, entry models.ChatLog) {
	s.mu.Lock()
	appended, triggerReply := s.reducer.Reduce(entry)
	s.mu.Unlock()

	if appended {
		s.emit(models.EventChatLog, entry)
	}

	if triggerReply {
		consumed, err := s.Messages.ConsumeModalFlag(ctx, s.RoomID, entry.MessageID)
		if err != nil {
			log.Printf("Failed to consume modal flag for message %s: %v", entry.MessageID, err)
		} else if !consumed {
			log.Printf("Modal flag for message %s already consumed elsewhere", entry.MessageID)
		}

		// The reply modal opens for this observer either way: the flag was
		// false when the message was read, and the conditional write only
		// arbitrates who records the consumption.
		s.mu.Lock()
		opened := s.flow.OfferReply()
		s.mu.Unlock()
		if opened {
			s.emit(models.EventReplyOffer, map[string]string{"from": entry.Name})
		}
	}
}

// SendMessage stores one outbound message and refreshes presence
func (s *RoomSession) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	if _, err := s.Messages.AppendMessage(ctx, s.RoomID, s.Profile.Name, text); err != nil {
		return err
	}
	if err := s.Presence.Touch(ctx, s.RoomID, s.Profile.Name); err != nil {
		log.Printf("Failed to touch presence for %s in room %s: %v", s.Profile.Name, s.RoomID, err)
	}
	return nil
}

// ConfirmConfession answers the open confession modal with a send
func (s *RoomSession) ConfirmConfession(ctx context.Context) error {
	s.mu.Lock()
	msg, ok := s.flow.ConfirmConfession()
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.SendMessage(ctx, msg)
}

// DismissConfession closes the confession modal without sending
func (s *RoomSession) DismissConfession() {
	s.mu.Lock()
	s.flow.DismissConfession()
	s.mu.Unlock()
}

// ConfirmReply answers an offered reply with the scripted response
func (s *RoomSession) ConfirmReply(ctx context.Context) error {
	s.mu.Lock()
	msg, ok := s.flow.ConfirmReply()
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.SendMessage(ctx, msg)
}

// DismissReply closes the reply modal without answering
func (s *RoomSession) DismissReply() {
	s.mu.Lock()
	s.flow.DismissReply()
	s.mu.Unlock()
}

func (s *RoomSession) emit(event string, data interface{}) {
	select {
	case s.Events <- models.SessionEvent{Event: event, Data: data}:
	default:
		// Slow consumer; dropping beats blocking the session loop.
		log.Printf("Dropping %s event for %s in room %s", event, s.Profile.Name, s.RoomID)
	}
}

// Close tears the session down: timers stop, the subscription is released,
// presence is deleted best-effort. Safe to call from any exit path, any
// number of times.
func (s *RoomSession) Close(ctx context.Context) {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.sub != nil {
			s.sub.Unsubscribe()
		}
		s.running.Wait()
		close(s.Events)

		if err := s.Presence.LeaveRoom(ctx, s.RoomID, s.Profile.Name); err != nil {
			log.Printf("Best-effort presence cleanup failed for %s in room %s: %v", s.Profile.Name, s.RoomID, err)
		}
	})
}
