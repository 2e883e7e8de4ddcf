package testhelpers

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
)

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$placeholderplaceholderplaceholderplacehold",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// ProfileOpts collects the optional profile fields tests care about.
type ProfileOpts struct {
	BirthDate     time.Time
	Gender        string
	ActivityLevel string
	HeightCm      float64
	WeightKg      float64
}

// CreateProfile inserts a complete profile for the user. Zero-valued
// height/weight are stored as NULL.
func CreateProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, opts ProfileOpts) *models.UserProfile {
	t.Helper()

	profile := &models.UserProfile{}
	require.NoError(t, db.Where("user_id = ?", userID).
		FirstOrInit(profile).Error)
	profile.UserID = userID
	if !opts.BirthDate.IsZero() {
		bd := opts.BirthDate
		profile.BirthDate = &bd
	}
	if opts.Gender != "" {
		g := opts.Gender
		profile.Gender = &g
	}
	if opts.ActivityLevel != "" {
		a := opts.ActivityLevel
		profile.ActivityLevel = &a
	}
	if opts.HeightCm != 0 {
		h := opts.HeightCm
		profile.HeightCm = &h
	}
	if opts.WeightKg != 0 {
		w := opts.WeightKg
		profile.WeightKg = &w
	}
	require.NoError(t, db.Save(profile).Error)
	return profile
}

// CreateGroup inserts a demographic group. Empty gender stores NULL.
func CreateGroup(t *testing.T, db *gorm.DB, name, gender, activity string, ageMin, ageMax float64) *models.DemographicGroup {
	t.Helper()
	group := &models.DemographicGroup{
		Name:          name,
		ActivityLevel: activity,
		AgeMinYears:   ageMin,
		AgeMaxYears:   ageMax,
	}
	if gender != "" {
		g := gender
		group.Gender = &g
	}
	require.NoError(t, db.Create(group).Error)
	return group
}

// CreateNutrient inserts a nutrient, reusing an existing row by name.
func CreateNutrient(t *testing.T, db *gorm.DB, name, unit string) *models.Nutrient {
	t.Helper()
	nutrient := &models.Nutrient{}
	err := db.Where("name = ?", name).First(nutrient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		nutrient = &models.Nutrient{Name: name, Unit: unit}
		err = db.Create(nutrient).Error
	}
	require.NoError(t, err)
	return nutrient
}

// CreateRDA links a group to a nutrient goal.
func CreateRDA(t *testing.T, db *gorm.DB, group *models.DemographicGroup, nutrient *models.Nutrient, value float64) {
	t.Helper()
	require.NoError(t, db.Create(&models.RDA{
		DemographicGroupID: group.ID,
		NutrientID:         nutrient.ID,
		RecommendedValue:   value,
	}).Error)
}

// CreateFood inserts a food with per-100g nutrient values keyed by
// nutrient name, creating nutrients (unit "g") as needed.
func CreateFood(t *testing.T, db *gorm.DB, name string, per100g map[string]float64) *models.Food {
	t.Helper()

	category := &models.FoodCategory{}
	err := db.Where("name = ?", "Cooked Preparations").First(category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = &models.FoodCategory{Name: "Cooked Preparations"}
		err = db.Create(category).Error
	}
	require.NoError(t, err)

	food := &models.Food{Name: name, CategoryID: category.ID}
	require.NoError(t, db.Create(food).Error)

	for nutrientName, value := range per100g {
		unit := "g"
		if nutrientName == "Energy" {
			unit = "kcal"
		}
		nutrient := CreateNutrient(t, db, nutrientName, unit)
		require.NoError(t, db.Create(&models.FoodNutrient{
			FoodID:       food.ID,
			NutrientID:   nutrient.ID,
			ValuePer100g: value,
		}).Error)
	}
	return food
}

// CreateLog inserts a food log row for the user at the given date.
func CreateLog(t *testing.T, db *gorm.DB, user *models.User, food *models.Food, grams float64, mealType string, logDate time.Time) *models.FoodLog {
	t.Helper()
	entry := &models.FoodLog{
		UserID:        user.ID,
		FoodID:        food.ID,
		QuantityGrams: grams,
		MealType:      mealType,
		LogDate:       time.Date(logDate.Year(), logDate.Month(), logDate.Day(), 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}
