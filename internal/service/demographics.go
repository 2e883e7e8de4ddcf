package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
)

// ageBand is one row of the minor matching table. Gendered bands carry
// separate names; the rest match regardless of gender.
type ageBand struct {
	minYears  float64
	maxYears  float64
	name      string
	boysName  string
	girlsName string
}

// minorAgeBands maps under-18 ages to named NIN groups on the dashboard
// path. Ranges are inclusive; the first hit wins, so order matters and
// boundaries stay auditable as data rather than branching logic.
var minorAgeBands = []ageBand{
	{minYears: 0, maxYears: 0.5, name: "Infants 0-6 months"},
	{minYears: 0.5, maxYears: 1, name: "Infants 6-12 months"},
	{minYears: 1, maxYears: 3, name: "Children 1-3 years"},
	{minYears: 4, maxYears: 6, name: "Children 4-6 years"},
	{minYears: 7, maxYears: 9, name: "Children 7-9 years"},
	{minYears: 10, maxYears: 12, boysName: "Boys 10-12 years", girlsName: "Girls 10-12 years"},
	{minYears: 13, maxYears: 15, boysName: "Boys 13-15 years", girlsName: "Girls 13-15 years"},
	{minYears: 16, maxYears: 17, boysName: "Boys 16-17 years", girlsName: "Girls 16-17 years"},
}

func (b ageBand) contains(age float64) bool {
	return b.minYears <= age && age <= b.maxYears
}

func (b ageBand) groupName(gender string) string {
	if b.name != "" {
		return b.name
	}
	if gender == models.GenderMale {
		return b.boysName
	}
	return b.girlsName
}

// CalculateAge returns whole years, adjusted for whether the birthday has
// occurred yet this year.
func CalculateAge(birthDate, today time.Time) int {
	age := today.Year() - birthDate.Year()
	if today.Month() < birthDate.Month() ||
		(today.Month() == birthDate.Month() && today.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// CalculateFractionalAge returns age in fractional years for infants
// (days / 365.25 while under one whole year) and float whole years
// otherwise. Used on the profile-save path to pick infant sub-bands.
func CalculateFractionalAge(birthDate, today time.Time) float64 {
	age := CalculateAge(birthDate, today)
	if age == 0 {
		return today.Sub(birthDate).Hours() / 24 / 365.25
	}
	return float64(age)
}

// DemographicService matches profiles to NIN demographic groups and
// resolves their RDA goals.
type DemographicService struct {
	db *gorm.DB
}

func NewDemographicService(db *gorm.DB) *DemographicService {
	return &DemographicService{db: db}
}

// MatchForDashboard maps a whole-year age plus gender and activity level
// to exactly one group. Under-18 ages go through the named band table;
// adults through the reference filter query.
func (s *DemographicService) MatchForDashboard(ctx context.Context, age int, gender, activityLevel string) (*models.DemographicGroup, error) {
	if age < 18 {
		for _, band := range minorAgeBands {
			if !band.contains(float64(age)) {
				continue
			}
			var group models.DemographicGroup
			err := s.db.WithContext(ctx).
				Where("name = ?", band.groupName(gender)).
				First(&group).Error
			if err == nil {
				return &group, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		return nil, &NoDemographicMatchError{Age: float64(age)}
	}
	return s.matchByFilters(ctx, float64(age), gender, activityLevel)
}

// MatchForProfile is the profile-save path: the filter query at any age,
// with fractional ages selecting infant sub-bands.
func (s *DemographicService) MatchForProfile(ctx context.Context, age float64, gender, activityLevel string) (*models.DemographicGroup, error) {
	return s.matchByFilters(ctx, age, gender, activityLevel)
}

// matchByFilters selects groups by activity level and inclusive age range.
// Gender must match exactly unless the profile gender is "other", which
// skips gender filtering entirely (wildcard rows included). Only "other"
// gets that relaxation; this asymmetry is existing behavior and is kept.
func (s *DemographicService) matchByFilters(ctx context.Context, age float64, gender, activityLevel string) (*models.DemographicGroup, error) {
	query := s.db.WithContext(ctx).
		Where("activity_level = ?", activityLevel).
		Where("age_min_years <= ? AND age_max_years >= ?", age, age)
	if gender != models.GenderOther {
		query = query.Where("gender = ?", gender)
	}

	var group models.DemographicGroup
	if err := query.First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NoDemographicMatchError{Age: age}
		}
		return nil, err
	}
	return &group, nil
}

// defaultEnergyGoal is assumed when a group carries no Energy RDA row.
const defaultEnergyGoal = 2000.0

// ResolveGoals builds the nutrient-name → recommended-value map for a
// group and applies the BMI energy adjustment: a fixed 500 kcal deficit
// above BMI 25, a fixed 300 kcal surplus below 18.5, no change on the
// inclusive middle band. Nothing besides Energy is adjusted. An empty map
// is a valid result.
func (s *DemographicService) ResolveGoals(ctx context.Context, group *models.DemographicGroup, profile *models.UserProfile) (map[string]float64, error) {
	var entries []models.RDA
	if err := s.db.WithContext(ctx).
		Preload("Nutrient").
		Where("demographic_group_id = ?", group.ID).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	goals := make(map[string]float64, len(entries))
	for _, entry := range entries {
		goals[entry.Nutrient.Name] = entry.RecommendedValue
	}

	if profile.HeightCm != nil && profile.WeightKg != nil && *profile.HeightCm > 0 {
		heightM := *profile.HeightCm / 100
		bmi := *profile.WeightKg / (heightM * heightM)

		baseEnergy := defaultEnergyGoal
		if v, ok := goals["Energy"]; ok {
			baseEnergy = v
		}

		switch {
		case bmi > 25:
			goals["Energy"] = baseEnergy - 500
		case bmi < 18.5:
			goals["Energy"] = baseEnergy + 300
		}
	}

	return goals, nil
}

// MatchAndResolve is the profile-save entry point: it matches the group
// and resolves its goals in one call so callers can cache the group id.
func (s *DemographicService) MatchAndResolve(ctx context.Context, age float64, gender, activityLevel string, profile *models.UserProfile) (*models.DemographicGroup, map[string]float64, error) {
	group, err := s.MatchForProfile(ctx, age, gender, activityLevel)
	if err != nil {
		return nil, nil, err
	}
	goals, err := s.ResolveGoals(ctx, group, profile)
	if err != nil {
		return nil, nil, err
	}
	return group, goals, nil
}
