package models

// ActiveUser is a profile's presence record scoped to one room.
// One item per room per user, keyed by name; refreshed on every outbound
// message, deleted when the user leaves.
type ActiveUser struct {
	RoomID        string            `dynamodbav:"roomId" json:"roomId"`
	Name          string            `dynamodbav:"name" json:"name"`
	Gender        string            `dynamodbav:"gender" json:"gender"`
	TargetGender  string            `dynamodbav:"targetGender" json:"targetGender"`
	Appearance    string            `dynamodbav:"appearance" json:"appearance"`
	AgeRange      string            `dynamodbav:"ageRange" json:"ageRange"`
	Personalities map[string]string `dynamodbav:"personalities" json:"personalities"`
	LastUpdated   int64             `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// ActiveUserFromProfile projects a registered profile into its presence record
func ActiveUserFromProfile(roomID string, profile UserProfile, now int64) ActiveUser {
	return ActiveUser{
		RoomID:        roomID,
		Name:          profile.Name,
		Gender:        profile.Gender,
		TargetGender:  profile.TargetGender,
		Appearance:    profile.FavoriteAppearance,
		AgeRange:      profile.FavoriteAgeRange,
		Personalities: profile.SelectedPersonalities,
		LastUpdated:   now,
	}
}

// ActiveUsersTable is the DynamoDB table name for room presence records
const ActiveUsersTable = "ActiveUsers"
