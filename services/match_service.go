package services

import (
	"errors"
	"unmei_server/models"
)

// ErrEmptyPersonalities is returned when a matching rate is requested against
// a candidate with no registered personalities. Profile validation upstream
// should make this unreachable; scoring refuses to guess instead of producing
// a misleading percentage.
var ErrEmptyPersonalities = errors.New("candidate has no personalities to compare")

// CalculateMatchingRate computes the compatibility percentage between the
// sole occupant of a room and the viewing user. Appearance and age range are
// one comparison unit each; every personality the candidate registered is one
// more unit whether or not it matches. The result is floor(100 * matches / total).
//
// Note the asymmetry: the candidate's personality keys drive the comparison,
// so CalculateMatchingRate(a, b) and CalculateMatchingRate(b, a) can differ.
func CalculateMatchingRate(candidate models.ActiveUser, viewer models.UserProfile) (int, error) {
	if len(candidate.Personalities) == 0 {
		return 0, ErrEmptyPersonalities
	}

	matchCount := 0
	totalAttributes := 0

	if candidate.Appearance == viewer.FavoriteAppearance {
		matchCount++
	}
	totalAttributes++

	if candidate.AgeRange == viewer.FavoriteAgeRange {
		matchCount++
	}
	totalAttributes++

	// Personalities are compared over the fixed vocabulary only; keys outside
	// it are ignored no matter what a stored record happens to carry.
	for _, key := range models.PersonalityOptions {
		value, ok := candidate.Personalities[key]
		if !ok {
			continue
		}
		if viewer.SelectedPersonalities[key] == value {
			matchCount++
		}
		totalAttributes++
	}

	return matchCount * 100 / totalAttributes, nil
}

// IsRoomAvailable decides whether the viewer may enter a room. An empty room
// is always open; a room with one occupant opens only when the declared
// targets line up both ways; a full room never opens.
func IsRoomAvailable(occupantCount int, viewer models.UserProfile, occupantGender, occupantTargetGender string) bool {
	if occupantCount == 0 {
		return true
	}
	if occupantCount >= models.RoomCapacity {
		return false
	}
	return occupantTargetGender == viewer.Gender && viewer.TargetGender == occupantGender
}
