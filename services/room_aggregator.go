package services

import (
	"log"

	"unmei_server/models"
)

// RoomAggregator folds per-room occupant snapshots into the room list for one
// viewer. Each roster event replaces that room's entry wholesale; stale
// occupant identities are fully discarded. Loaded flips once every watched
// room has reported at least once.
type RoomAggregator struct {
	viewer  models.UserProfile
	order   []string
	rooms   map[string]models.RoomInfo
	pending map[string]bool
}

func NewRoomAggregator(viewer models.UserProfile, roomIDs []string) *RoomAggregator {
	pending := make(map[string]bool, len(roomIDs))
	for _, id := range roomIDs {
		pending[id] = true
	}
	return &RoomAggregator{
		viewer:  viewer,
		order:   roomIDs,
		rooms:   make(map[string]models.RoomInfo, len(roomIDs)),
		pending: pending,
	}
}

// Fold applies one roster snapshot
func (a *RoomAggregator) Fold(event models.RosterEvent) {
	a.rooms[event.RoomID] = BuildRoomInfo(event.RoomID, event.Users, a.viewer)
	delete(a.pending, event.RoomID)
}

// Loaded reports whether every watched room has delivered a first snapshot
func (a *RoomAggregator) Loaded() bool {
	return len(a.pending) == 0
}

// Rooms returns the current room list in the fixed room order. Rooms that
// have not reported yet are omitted.
func (a *RoomAggregator) Rooms() []models.RoomInfo {
	result := make([]models.RoomInfo, 0, len(a.rooms))
	for _, id := range a.order {
		if info, ok := a.rooms[id]; ok {
			result = append(result, info)
		}
	}
	return result
}

// BuildRoomInfo derives the read model for one room from its occupant set.
// The matching rate exists only when exactly one other user is present.
func BuildRoomInfo(roomID string, users []models.ActiveUser, viewer models.UserProfile) models.RoomInfo {
	info := models.RoomInfo{
		ID:        roomID,
		UserCount: len(users),
		Users:     users,
	}

	if len(users) == 1 {
		occupant := users[0]
		rate, err := CalculateMatchingRate(occupant, viewer)
		if err != nil {
			log.Printf("Skipping matching rate for room %s: %v", roomID, err)
		} else {
			info.MatchingRate = &rate
		}
		info.Available = IsRoomAvailable(1, viewer, occupant.Gender, occupant.TargetGender)
	} else {
		info.Available = IsRoomAvailable(len(users), viewer, "", "")
	}

	return info
}
