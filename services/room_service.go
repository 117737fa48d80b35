package services

import (
	"context"
	"fmt"

	"unmei_server/models"
)

// RoomService serves one-shot room list snapshots for the HTTP surface. The
// live view of the same data goes through RoomAggregator fed by the broker.
type RoomService struct {
	Presence *PresenceService
}

// ListRooms builds the room list for a viewer: occupancy, matching rate when
// a single occupant is present, availability and the card image per room.
func (rs *RoomService) ListRooms(ctx context.Context, viewer models.UserProfile) ([]models.RoomInfo, error) {
	rooms := make([]models.RoomInfo, 0, len(models.RoomNumbers))

	for _, roomID := range models.RoomNumbers {
		users, err := rs.Presence.RoomUsers(ctx, roomID)
		if err != nil {
			return nil, fmt.Errorf("failed to list room '%s': %w", roomID, err)
		}

		info := BuildRoomInfo(roomID, users, viewer)
		info.ImageURL = RoomImageURL(info.UserCount)
		rooms = append(rooms, info)
	}

	return rooms, nil
}
