package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
	"github.com/poshanlabs/nutrigap-backend/internal/types"
)

// ProfileService handles user profile reads and the save-time demographic
// resolution that caches the matched group id on the profile row.
type ProfileService struct {
	db           *gorm.DB
	demographics *DemographicService
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db:           db,
		demographics: NewDemographicService(db),
	}
}

// GetProfile retrieves a user's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// CreateOrUpdateProfile upserts the profile and recomputes the cached
// demographic group id. The cached id is recomputed on every write, never
// trusted from a previous save.
func (s *ProfileService) CreateOrUpdateProfile(ctx context.Context, userID uuid.UUID, req *types.ProfileRequest) (*models.UserProfile, *models.DemographicGroup, error) {
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, nil, ErrInvalidBirthDate
	}

	age := CalculateFractionalAge(birthDate, time.Now().UTC())

	candidate := &models.UserProfile{
		HeightCm: &req.HeightCm,
		WeightKg: &req.WeightKg,
	}
	group, _, err := s.demographics.MatchAndResolve(ctx, age, req.Gender, req.ActivityLevel, candidate)
	if err != nil {
		return nil, nil, err
	}

	var profile models.UserProfile
	err = s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		profile = models.UserProfile{UserID: userID}
	}

	gender := req.Gender
	activity := req.ActivityLevel
	profile.BirthDate = &birthDate
	profile.Gender = &gender
	profile.ActivityLevel = &activity
	profile.HeightCm = &req.HeightCm
	profile.WeightKg = &req.WeightKg
	profile.DietaryPreference = req.DietaryPreference
	profile.BudgetRange = req.BudgetRange
	profile.PreferredCuisine = req.PreferredCuisine
	profile.DemographicGroupID = &group.ID

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return &profile, group, nil
}
