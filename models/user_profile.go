package models

// UserProfile defines the structure for registered user profiles
type UserProfile struct {
	Name                  string            `dynamodbav:"name" json:"name"`
	Gender                string            `dynamodbav:"gender" json:"gender"`
	TargetGender          string            `dynamodbav:"targetGender" json:"targetGender"`
	FavoriteAppearance    string            `dynamodbav:"favoriteAppearance" json:"favoriteAppearance"`
	SelectedPersonalities map[string]string `dynamodbav:"selectedPersonalities" json:"selectedPersonalities"`
	FavoriteAgeRange      string            `dynamodbav:"favoriteAgeRange" json:"favoriteAgeRange"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
