package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"unmei_server/models"
	"unmei_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MessageService owns the Messages records for each room and publishes every
// stored message to live subscribers.
type MessageService struct {
	Dynamo *DynamoService
	Broker *Broker
	// NewMessageID and Now are swappable for tests
	NewMessageID func() string
	Now          func() int64
}

func messageKey(roomID, messageID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"roomId":    &types.AttributeValueMemberS{Value: roomID},
		"messageId": &types.AttributeValueMemberS{Value: messageID},
	}
}

// AppendMessage stores a chat message and publishes it. A confession is born
// unconsumed (modalOpenFlag false) so exactly one observer can take the
// reply-offer trigger; every other message is born consumed.
func (s *MessageService) AppendMessage(ctx context.Context, roomID, name, msg string) (models.ChatLog, error) {
	entry := models.ChatLog{
		RoomID:        roomID,
		MessageID:     s.NewMessageID(),
		Name:          name,
		Msg:           msg,
		Date:          s.Now(),
		ModalOpenFlag: msg != models.ConfessionMessage,
	}
	return entry, s.store(ctx, entry)
}

// AppendAnnounce stores the system notice marking a user's entry into a room
func (s *MessageService) AppendAnnounce(ctx context.Context, roomID, name string) (models.ChatLog, error) {
	entry := models.ChatLog{
		RoomID:        roomID,
		MessageID:     s.NewMessageID(),
		Name:          name,
		Msg:           fmt.Sprintf("%sさんが入室しました", name),
		Date:          s.Now(),
		ModalOpenFlag: true,
		AnnounceFlag:  true,
	}
	return entry, s.store(ctx, entry)
}

func (s *MessageService) store(ctx context.Context, entry models.ChatLog) error {
	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, entry); err != nil {
		return fmt.Errorf("failed to store message in room '%s': %w", entry.RoomID, err)
	}

	if err := s.Broker.PublishMessage(ctx, models.MessageEvent{RoomID: entry.RoomID, Message: entry}); err != nil {
		// The message is durable; only the live push failed.
		log.Printf("Failed to publish message %s in room %s: %v", entry.MessageID, entry.RoomID, err)
	}
	return nil
}

// RecentMessages fetches the newest entries for a room, newest first,
// bounded to limit. DynamoDB gives no cross-key order here, so sorting
// happens client-side like the rest of the message reads.
func (s *MessageService) RecentMessages(ctx context.Context, roomID string, limit int) ([]models.ChatLog, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable,
		"roomId = :roomId",
		map[string]types.AttributeValue{
			":roomId": &types.AttributeValueMemberS{Value: roomID},
		},
		nil, 0,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages for room '%s': %w", roomID, err)
	}

	var messages []models.ChatLog
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages for room '%s': %w", roomID, err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Date > messages[j].Date
	})

	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}

	return messages, nil
}

// ConsumeModalFlag flips a confession's modalOpenFlag to true, conditionally:
// only the first observer's write lands. Returns false without error when
// another client already consumed it.
func (s *MessageService) ConsumeModalFlag(ctx context.Context, roomID, messageID string) (bool, error) {
	attributes, err := s.Dynamo.UpdateItemWithCondition(ctx, models.MessagesTable,
		"SET modalOpenFlag = :true",
		"modalOpenFlag = :false",
		messageKey(roomID, messageID),
		map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
	)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume modal flag for message '%s': %w", messageID, err)
	}

	log.Printf("Consumed confession from %s in room %s", utils.ExtractString(attributes, "name"), roomID)
	return true, nil
}
