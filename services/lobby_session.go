package services

import (
	"context"
	"log"
	"sync"

	"unmei_server/models"
)

// LobbySession streams the live room list to one client browsing the lobby.
// It primes the aggregator with a snapshot of every room, then folds roster
// pushes from the broker, emitting the recomputed list after each change.
type LobbySession struct {
	Viewer models.UserProfile
	Events chan models.SessionEvent

	Presence *PresenceService
	Broker   *Broker

	aggregator *RoomAggregator

	sub       *RosterSubscription
	done      chan struct{}
	running   sync.WaitGroup
	closeOnce sync.Once
}

func NewLobbySession(viewer models.UserProfile, presence *PresenceService, broker *Broker) *LobbySession {
	return &LobbySession{
		Viewer:     viewer,
		Events:     make(chan models.SessionEvent, 16),
		Presence:   presence,
		Broker:     broker,
		aggregator: NewRoomAggregator(viewer, models.RoomNumbers),
		done:       make(chan struct{}),
	}
}

// Start subscribes to every room's roster channel, then primes the
// aggregator by reading each room's current occupant set. The subscription
// opens first so no change can fall between the prime and the live feed.
func (s *LobbySession) Start(ctx context.Context) error {
	s.sub = s.Broker.SubscribeRoster(ctx, models.RoomNumbers...)

	for _, roomID := range models.RoomNumbers {
		users, err := s.Presence.RoomUsers(ctx, roomID)
		if err != nil {
			s.sub.Unsubscribe()
			return err
		}
		s.aggregator.Fold(models.RosterEvent{RoomID: roomID, Users: users})
	}
	s.emitRooms()

	s.running.Add(1)
	go s.run()
	return nil
}

func (s *LobbySession) run() {
	defer s.running.Done()

	feed := s.sub.C
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-feed:
			if !ok {
				log.Printf("Roster feed closed for lobby viewer %s", s.Viewer.Name)
				return
			}
			s.aggregator.Fold(event)
			s.emitRooms()
		}
	}
}

func (s *LobbySession) emitRooms() {
	rooms := s.aggregator.Rooms()
	for i := range rooms {
		rooms[i].ImageURL = RoomImageURL(rooms[i].UserCount)
	}
	select {
	case s.Events <- models.SessionEvent{Event: models.EventRooms, Data: rooms}:
	default:
		log.Printf("Dropping rooms event for lobby viewer %s", s.Viewer.Name)
	}
}

// Close releases the subscription and stops the loop, exactly once
func (s *LobbySession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.sub.Unsubscribe()
		s.running.Wait()
		close(s.Events)
	})
}
