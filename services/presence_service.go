package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"unmei_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PresenceService owns the ActiveUsers records: one item per room per user.
// Every write republishes the room's full occupant set on the broker so
// subscribers replace their snapshot wholesale.
type PresenceService struct {
	Dynamo *DynamoService
	Broker *Broker
}

func presenceKey(roomID, name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"roomId": &types.AttributeValueMemberS{Value: roomID},
		"name":   &types.AttributeValueMemberS{Value: name},
	}
}

// EnterRoom upserts the user's presence record for the room
func (ps *PresenceService) EnterRoom(ctx context.Context, roomID string, profile models.UserProfile) error {
	activeUser := models.ActiveUserFromProfile(roomID, profile, time.Now().UnixMilli())

	if err := ps.Dynamo.PutItem(ctx, models.ActiveUsersTable, activeUser); err != nil {
		return fmt.Errorf("failed to upsert presence for '%s' in room '%s': %w", profile.Name, roomID, err)
	}

	ps.publishRoster(ctx, roomID)
	return nil
}

// LeaveRoom deletes the user's presence record. Fired on all three exit
// paths (explicit leave, back navigation, disconnect) and is best-effort.
func (ps *PresenceService) LeaveRoom(ctx context.Context, roomID, name string) error {
	if err := ps.Dynamo.DeleteItem(ctx, models.ActiveUsersTable, presenceKey(roomID, name)); err != nil {
		return fmt.Errorf("failed to delete presence for '%s' in room '%s': %w", name, roomID, err)
	}

	ps.publishRoster(ctx, roomID)
	return nil
}

// Touch refreshes the presence record's lastUpdated timestamp. Called on
// every outbound message.
func (ps *PresenceService) Touch(ctx context.Context, roomID, name string) error {
	_, err := ps.Dynamo.UpdateItem(ctx, models.ActiveUsersTable,
		"SET lastUpdated = :now",
		presenceKey(roomID, name),
		map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().UnixMilli())},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to touch presence for '%s' in room '%s': %w", name, roomID, err)
	}
	return nil
}

// RoomUsers returns the current occupant set of a room, ordered by entry time
func (ps *PresenceService) RoomUsers(ctx context.Context, roomID string) ([]models.ActiveUser, error) {
	items, err := ps.Dynamo.QueryItems(ctx, models.ActiveUsersTable,
		"roomId = :roomId",
		map[string]types.AttributeValue{
			":roomId": &types.AttributeValueMemberS{Value: roomID},
		},
		nil, 0,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch occupants of room '%s': %w", roomID, err)
	}

	var users []models.ActiveUser
	if err := attributevalue.UnmarshalListOfMaps(items, &users); err != nil {
		return nil, fmt.Errorf("failed to parse occupants of room '%s': %w", roomID, err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].LastUpdated < users[j].LastUpdated
	})

	return users, nil
}

// publishRoster pushes the room's occupant set to live subscribers. A failed
// publish only stalls the live view, so it is logged and swallowed.
func (ps *PresenceService) publishRoster(ctx context.Context, roomID string) {
	users, err := ps.RoomUsers(ctx, roomID)
	if err != nil {
		log.Printf("Failed to load roster for room %s after write: %v", roomID, err)
		return
	}
	if err := ps.Broker.PublishRoster(ctx, models.RosterEvent{RoomID: roomID, Users: users}); err != nil {
		log.Printf("Failed to publish roster for room %s: %v", roomID, err)
	}
}
