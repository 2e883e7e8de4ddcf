package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
	"github.com/poshanlabs/nutrigap-backend/internal/testhelpers"
	"github.com/poshanlabs/nutrigap-backend/internal/types"
)

func adultProfileRequest(birthDate time.Time) *types.ProfileRequest {
	return &types.ProfileRequest{
		BirthDate:     birthDate.Format("2006-01-02"),
		Gender:        models.GenderMale,
		ActivityLevel: models.ActivitySedentary,
		HeightCm:      175,
		WeightKg:      70,
	}
}

func TestCreateOrUpdateProfile(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()

	group := testhelpers.CreateGroup(t, db, "Man - Sedentary", models.GenderMale, models.ActivitySedentary, 18, 120)
	user := testhelpers.CreateUser(t, db, "profile@example.com")
	birthDate := time.Now().UTC().AddDate(-30, 0, -1)

	t.Run("create resolves and caches the group", func(t *testing.T) {
		profile, matched, err := svc.CreateOrUpdateProfile(ctx, user.ID, adultProfileRequest(birthDate))
		require.NoError(t, err)
		assert.Equal(t, group.ID, *profile.DemographicGroupID)
		assert.Equal(t, "Man - Sedentary", matched.Name)
		assert.Equal(t, 70.0, *profile.WeightKg)
	})

	t.Run("update recomputes the cached group", func(t *testing.T) {
		womanGroup := testhelpers.CreateGroup(t, db, "Woman - Sedentary", models.GenderFemale, models.ActivitySedentary, 18, 120)

		req := adultProfileRequest(birthDate)
		req.Gender = models.GenderFemale
		profile, matched, err := svc.CreateOrUpdateProfile(ctx, user.ID, req)
		require.NoError(t, err)
		assert.Equal(t, womanGroup.ID, *profile.DemographicGroupID)
		assert.Equal(t, "Woman - Sedentary", matched.Name)

		// Still a single row per user.
		var count int64
		require.NoError(t, db.Model(&models.UserProfile{}).
			Where("user_id = ?", user.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("invalid birth date", func(t *testing.T) {
		req := adultProfileRequest(birthDate)
		req.BirthDate = "31-08-1996"
		_, _, err := svc.CreateOrUpdateProfile(ctx, user.ID, req)
		assert.ErrorIs(t, err, ErrInvalidBirthDate)
	})

	t.Run("no demographic match rejects the save", func(t *testing.T) {
		req := adultProfileRequest(birthDate)
		req.ActivityLevel = models.ActivityHeavy
		_, _, err := svc.CreateOrUpdateProfile(ctx, user.ID, req)
		var noMatch *NoDemographicMatchError
		assert.ErrorAs(t, err, &noMatch)
	})
}

func TestCreateOrUpdateProfile_InfantFractionalAge(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()

	testhelpers.CreateGroup(t, db, "Infants 0-6 months", "", models.ActivityInfant, 0, 0.5)
	testhelpers.CreateGroup(t, db, "Infants 6-12 months", "", models.ActivityInfant, 0.5, 1)
	user := testhelpers.CreateUser(t, db, "infant@example.com")

	req := &types.ProfileRequest{
		BirthDate:     time.Now().UTC().AddDate(0, 0, -120).Format("2006-01-02"), // ~4 months
		Gender:        models.GenderOther,
		ActivityLevel: models.ActivityInfant,
		HeightCm:      60,
		WeightKg:      6,
	}
	_, matched, err := svc.CreateOrUpdateProfile(ctx, user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Infants 0-6 months", matched.Name)
}

func TestGetProfile(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()

	user := testhelpers.CreateUser(t, db, "get@example.com")

	_, err := svc.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	testhelpers.CreateProfile(t, db, user.ID, testhelpers.ProfileOpts{
		Gender: models.GenderMale,
	})
	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
}
