package services

import (
	"context"
	"errors"
	"fmt"

	"unmei_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ProfileService struct {
	Dynamo *DynamoService
}

var ErrProfileNotFound = errors.New("profile not found")

// ValidateProfile checks a profile against the fixed vocabularies before it
// is stored. Matching assumes these invariants, in particular a non-empty
// personality set.
func (ps *ProfileService) ValidateProfile(profile models.UserProfile) error {
	if profile.Name == "" {
		return errors.New("name is required")
	}
	if profile.Gender != models.GenderMale && profile.Gender != models.GenderFemale {
		return fmt.Errorf("invalid gender: '%s'", profile.Gender)
	}
	if profile.TargetGender != models.GenderMale && profile.TargetGender != models.GenderFemale {
		return fmt.Errorf("invalid targetGender: '%s'", profile.TargetGender)
	}

	if !contains(models.AgeRangeOptions, profile.FavoriteAgeRange) {
		return fmt.Errorf("invalid favoriteAgeRange: '%s'", profile.FavoriteAgeRange)
	}

	// The appearance options are keyed by the gender of the person being
	// described, so the favorite is drawn from the target gender's set.
	appearanceOptions := models.MaleAppearanceOptions
	if profile.TargetGender == models.GenderFemale {
		appearanceOptions = models.FemaleAppearanceOptions
	}
	if !contains(appearanceOptions, profile.FavoriteAppearance) {
		return fmt.Errorf("invalid favoriteAppearance: '%s'", profile.FavoriteAppearance)
	}

	if len(profile.SelectedPersonalities) == 0 {
		return errors.New("at least one personality must be selected")
	}
	for key := range profile.SelectedPersonalities {
		if !contains(models.PersonalityOptions, key) {
			return fmt.Errorf("unknown personality: '%s'", key)
		}
	}

	return nil
}

// SaveProfile validates and stores a profile, overwriting any prior one
func (ps *ProfileService) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	if err := ps.ValidateProfile(profile); err != nil {
		return err
	}
	if err := ps.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return fmt.Errorf("failed to store profile for '%s': %w", profile.Name, err)
	}
	return nil
}

// GetProfile retrieves a profile by name
func (ps *ProfileService) GetProfile(ctx context.Context, name string) (models.UserProfile, error) {
	var profile models.UserProfile

	item, err := ps.Dynamo.GetItem(ctx, models.UserProfilesTable, map[string]types.AttributeValue{
		"name": &types.AttributeValueMemberS{Value: name},
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return profile, ErrProfileNotFound
		}
		return profile, fmt.Errorf("failed to fetch profile for '%s': %w", name, err)
	}

	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return profile, fmt.Errorf("failed to parse profile for '%s': %w", name, err)
	}
	return profile, nil
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
