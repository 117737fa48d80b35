package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"unmei_server/models"

	"github.com/redis/go-redis/v9"
)

// Broker fans room changes out to live subscribers over Redis Pub/Sub.
// Presence and message writes publish here after the document store accepts
// them; room and lobby sessions subscribe and receive typed events.
type Broker struct {
	Redis *redis.Client
}

func NewBroker(addr string) *Broker {
	return &Broker{
		Redis: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func rosterChannel(roomID string) string {
	return "room:" + roomID + ":roster"
}

func messageChannel(roomID string) string {
	return "room:" + roomID + ":messages"
}

// PublishRoster broadcasts the full occupant set of a room
func (b *Broker) PublishRoster(ctx context.Context, event models.RosterEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal roster event: %w", err)
	}
	if err := b.Redis.Publish(ctx, rosterChannel(event.RoomID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish roster event for room '%s': %w", event.RoomID, err)
	}
	return nil
}

// PublishMessage broadcasts a newly stored message
func (b *Broker) PublishMessage(ctx context.Context, event models.MessageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal message event: %w", err)
	}
	if err := b.Redis.Publish(ctx, messageChannel(event.RoomID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish message event for room '%s': %w", event.RoomID, err)
	}
	return nil
}

// RosterSubscription is a live roster feed. C closes after Unsubscribe.
type RosterSubscription struct {
	C      <-chan models.RosterEvent
	pubsub *redis.PubSub
	quit   chan struct{}
	once   sync.Once
}

func (s *RosterSubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.quit)
		_ = s.pubsub.Close()
	})
}

// SubscribeRoster opens a live occupant-set feed for the given rooms
func (b *Broker) SubscribeRoster(ctx context.Context, roomIDs ...string) *RosterSubscription {
	channels := make([]string, len(roomIDs))
	for i, id := range roomIDs {
		channels[i] = rosterChannel(id)
	}
	pubsub := b.Redis.Subscribe(ctx, channels...)

	out := make(chan models.RosterEvent)
	quit := make(chan struct{})
	go pumpRosterEvents(pubsub.Channel(), out, quit)

	return &RosterSubscription{C: out, pubsub: pubsub, quit: quit}
}

// pumpRosterEvents decodes raw Pub/Sub payloads onto out until the source
// channel closes or quit fires. The quit channel keeps a pump parked on a
// slow receiver from outliving its subscription.
func pumpRosterEvents(in <-chan *redis.Message, out chan<- models.RosterEvent, quit <-chan struct{}) {
	defer close(out)
	for {
		select {
		case <-quit:
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			var event models.RosterEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Error unmarshalling roster event: %v", err)
				continue
			}
			select {
			case out <- event:
			case <-quit:
				return
			}
		}
	}
}

// MessageSubscription is a live message-added feed. C closes after Unsubscribe.
type MessageSubscription struct {
	C      <-chan models.MessageEvent
	pubsub *redis.PubSub
	quit   chan struct{}
	once   sync.Once
}

func (s *MessageSubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.quit)
		_ = s.pubsub.Close()
	})
}

// SubscribeMessages opens a live message feed for one room
func (b *Broker) SubscribeMessages(ctx context.Context, roomID string) *MessageSubscription {
	pubsub := b.Redis.Subscribe(ctx, messageChannel(roomID))

	out := make(chan models.MessageEvent)
	quit := make(chan struct{})
	go pumpMessageEvents(pubsub.Channel(), out, quit)

	return &MessageSubscription{C: out, pubsub: pubsub, quit: quit}
}

func pumpMessageEvents(in <-chan *redis.Message, out chan<- models.MessageEvent, quit <-chan struct{}) {
	defer close(out)
	for {
		select {
		case <-quit:
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			var event models.MessageEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Error unmarshalling message event: %v", err)
				continue
			}
			select {
			case out <- event:
			case <-quit:
				return
			}
		}
	}
}
