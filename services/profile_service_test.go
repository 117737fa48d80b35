package services_test

import (
	"testing"

	"unmei_server/models"
	"unmei_server/services"

	"github.com/stretchr/testify/assert"
)

func validProfile() models.UserProfile {
	return models.UserProfile{
		Name:                  "hanako",
		Gender:                models.GenderFemale,
		TargetGender:          models.GenderMale,
		FavoriteAppearance:    "爽やか系",
		FavoriteAgeRange:      "25 - 30",
		SelectedPersonalities: map[string]string{"やさしい": "true"},
	}
}

func TestValidateProfile(t *testing.T) {
	ps := &services.ProfileService{}

	assert.NoError(t, ps.ValidateProfile(validProfile()))

	missingName := validProfile()
	missingName.Name = ""
	assert.Error(t, ps.ValidateProfile(missingName))

	badGender := validProfile()
	badGender.Gender = "other"
	assert.Error(t, ps.ValidateProfile(badGender))

	badTarget := validProfile()
	badTarget.TargetGender = ""
	assert.Error(t, ps.ValidateProfile(badTarget))

	badAgeRange := validProfile()
	badAgeRange.FavoriteAgeRange = "90 - 120"
	assert.Error(t, ps.ValidateProfile(badAgeRange))

	emptyAgeRange := validProfile()
	emptyAgeRange.FavoriteAgeRange = ""
	assert.Error(t, ps.ValidateProfile(emptyAgeRange))

	emptyAppearance := validProfile()
	emptyAppearance.FavoriteAppearance = ""
	assert.Error(t, ps.ValidateProfile(emptyAppearance))

	// Favorite appearance must come from the target gender's option set:
	// hanako is looking for a male, so female appearances are rejected.
	wrongAppearanceSet := validProfile()
	wrongAppearanceSet.FavoriteAppearance = "かわいい系"
	assert.Error(t, ps.ValidateProfile(wrongAppearanceSet))

	noPersonalities := validProfile()
	noPersonalities.SelectedPersonalities = nil
	assert.Error(t, ps.ValidateProfile(noPersonalities))

	unknownPersonality := validProfile()
	unknownPersonality.SelectedPersonalities = map[string]string{"つよい": "true"}
	assert.Error(t, ps.ValidateProfile(unknownPersonality))
}
