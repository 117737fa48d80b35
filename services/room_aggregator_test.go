package services_test

import (
	"testing"

	"unmei_server/models"
	"unmei_server/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRosterWholesaleReplacement: each snapshot replaces the room entry
// entirely; occupants from the previous snapshot do not linger.
func TestRosterWholesaleReplacement(t *testing.T) {
	viewer := makeViewer("hanako", models.GenderFemale, models.GenderMale)
	aggregator := services.NewRoomAggregator(viewer, []string{"1"})

	aggregator.Fold(models.RosterEvent{RoomID: "1", Users: []models.ActiveUser{
		makeOccupant("taro", models.GenderMale, models.GenderFemale),
		makeOccupant("jiro", models.GenderMale, models.GenderFemale),
	}})
	aggregator.Fold(models.RosterEvent{RoomID: "1", Users: []models.ActiveUser{
		makeOccupant("saburo", models.GenderMale, models.GenderFemale),
	}})

	rooms := aggregator.Rooms()
	require.Len(t, rooms, 1)
	require.Len(t, rooms[0].Users, 1)
	assert.Equal(t, "saburo", rooms[0].Users[0].Name)
	assert.Equal(t, 1, rooms[0].UserCount)
}

// TestMatchingRateOnlyForSoleOccupant: the rate exists exactly when one other
// user is in the room.
func TestMatchingRateOnlyForSoleOccupant(t *testing.T) {
	viewer := makeViewer("hanako", models.GenderFemale, models.GenderMale)
	aggregator := services.NewRoomAggregator(viewer, []string{"1", "2", "3"})

	aggregator.Fold(models.RosterEvent{RoomID: "1", Users: nil})
	aggregator.Fold(models.RosterEvent{RoomID: "2", Users: []models.ActiveUser{
		makeOccupant("taro", models.GenderMale, models.GenderFemale),
	}})
	aggregator.Fold(models.RosterEvent{RoomID: "3", Users: []models.ActiveUser{
		makeOccupant("taro", models.GenderMale, models.GenderFemale),
		makeOccupant("hanako", models.GenderFemale, models.GenderMale),
	}})

	rooms := aggregator.Rooms()
	require.Len(t, rooms, 3)

	assert.Nil(t, rooms[0].MatchingRate)
	assert.True(t, rooms[0].Available)

	require.NotNil(t, rooms[1].MatchingRate)
	assert.Equal(t, 100, *rooms[1].MatchingRate)
	assert.True(t, rooms[1].Available)

	assert.Nil(t, rooms[2].MatchingRate)
	assert.False(t, rooms[2].Available)
}

// TestLoadedAfterEveryRoomReports: the loaded signal waits for the first
// snapshot from each watched room.
func TestLoadedAfterEveryRoomReports(t *testing.T) {
	viewer := makeViewer("hanako", models.GenderFemale, models.GenderMale)
	aggregator := services.NewRoomAggregator(viewer, []string{"1", "2"})

	assert.False(t, aggregator.Loaded())
	aggregator.Fold(models.RosterEvent{RoomID: "1", Users: nil})
	assert.False(t, aggregator.Loaded())
	aggregator.Fold(models.RosterEvent{RoomID: "2", Users: nil})
	assert.True(t, aggregator.Loaded())
}

// TestGenderMismatchDisablesRoom: a single occupant whose targets do not line
// up leaves the room visible but not enterable.
func TestGenderMismatchDisablesRoom(t *testing.T) {
	viewer := makeViewer("hanako", models.GenderFemale, models.GenderMale)
	aggregator := services.NewRoomAggregator(viewer, []string{"1"})

	occupant := makeOccupant("taro", models.GenderMale, models.GenderMale)
	aggregator.Fold(models.RosterEvent{RoomID: "1", Users: []models.ActiveUser{occupant}})

	rooms := aggregator.Rooms()
	require.Len(t, rooms, 1)
	assert.False(t, rooms[0].Available)
	assert.NotNil(t, rooms[0].MatchingRate)
}

// TestOccupantWithoutPersonalitiesHasNoRate: scoring declines rather than
// inventing a percentage; the room entry still renders.
func TestOccupantWithoutPersonalitiesHasNoRate(t *testing.T) {
	viewer := makeViewer("hanako", models.GenderFemale, models.GenderMale)
	aggregator := services.NewRoomAggregator(viewer, []string{"1"})

	occupant := makeOccupant("taro", models.GenderMale, models.GenderFemale)
	occupant.Personalities = nil
	aggregator.Fold(models.RosterEvent{RoomID: "1", Users: []models.ActiveUser{occupant}})

	rooms := aggregator.Rooms()
	require.Len(t, rooms, 1)
	assert.Nil(t, rooms[0].MatchingRate)
	assert.Equal(t, 1, rooms[0].UserCount)
}

// TestRoomsKeepFixedOrder: the list follows the fixed room numbering, not
// fold order.
func TestRoomsKeepFixedOrder(t *testing.T) {
	viewer := makeViewer("hanako", models.GenderFemale, models.GenderMale)
	aggregator := services.NewRoomAggregator(viewer, []string{"1", "2", "3"})

	aggregator.Fold(models.RosterEvent{RoomID: "3", Users: nil})
	aggregator.Fold(models.RosterEvent{RoomID: "1", Users: nil})

	rooms := aggregator.Rooms()
	require.Len(t, rooms, 2)
	assert.Equal(t, "1", rooms[0].ID)
	assert.Equal(t, "3", rooms[1].ID)
}
