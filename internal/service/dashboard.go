package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
	"github.com/poshanlabs/nutrigap-backend/internal/types"
)

// DashboardService produces the per-day nutrient gap analysis: RDA goals
// for the user's demographic group versus what they actually logged.
type DashboardService struct {
	db           *gorm.DB
	demographics *DemographicService
}

// Ensure DashboardService implements IDashboardService
var _ IDashboardService = (*DashboardService)(nil)

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:           db,
		demographics: NewDemographicService(db),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// normalizeDate truncates to midnight UTC so (user, date) lookups behave
// identically across drivers.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetDashboard builds the full gap report for a user and date. The
// pipeline is stateless and idempotent: same profile and logs in, same
// report out.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID, logDate time.Time) (*types.DashboardReport, error) {
	profile, err := s.loadCompleteProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	age := CalculateAge(*profile.BirthDate, time.Now().UTC())

	group, err := s.demographics.MatchForDashboard(ctx, age, *profile.Gender, *profile.ActivityLevel)
	if err != nil {
		return nil, err
	}

	goals, err := s.demographics.ResolveGoals(ctx, group, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve RDA goals: %w", err)
	}

	consumed, err := s.sumConsumption(ctx, userID, logDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate consumption: %w", err)
	}

	rows, err := s.buildDetailedRows(ctx, goals, consumed)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"group":   group.Name,
		"date":    normalizeDate(logDate).Format("2006-01-02"),
	}).Debug("gap report built")

	return &types.DashboardReport{
		LogDate:                 normalizeDate(logDate).Format("2006-01-02"),
		MatchedDemographicGroup: group.Name,
		TotalCaloriesGoal:       round2(goals["Energy"]),
		TotalCaloriesConsumed:   round2(consumed["Energy"]),
		TotalProteinGoal:        round2(goals["Protein"]),
		TotalProteinConsumed:    round2(consumed["Protein"]),
		// The fat goal tracks "Visible Fat" while consumption tracks total
		// "Fat"; two distinct reference nutrients, never unified.
		TotalFatGoal:       round2(goals["Visible Fat"]),
		TotalFatConsumed:   round2(consumed["Fat"]),
		TotalCarbsGoal:     round2(goals["Carbohydrate"]),
		TotalCarbsConsumed: round2(consumed["Carbohydrate"]),
		DetailedAnalysis:   rows,
	}, nil
}

// loadCompleteProfile fetches the profile and validates the fields the
// gap analysis needs. Height is not required here: without it the BMI
// adjustment is skipped rather than failed.
func (s *DashboardService) loadCompleteProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var missing []string
	if profile.BirthDate == nil {
		missing = append(missing, "birth_date")
	}
	if profile.Gender == nil {
		missing = append(missing, "gender")
	}
	if profile.ActivityLevel == nil {
		missing = append(missing, "activity_level")
	}
	if profile.WeightKg == nil {
		missing = append(missing, "weight_kg")
	}
	if len(missing) > 0 {
		return nil, &ProfileIncompleteError{Missing: missing}
	}

	return &profile, nil
}

// sumConsumption totals nutrient intake for a user on a date. Each log
// entry contributes value_per_100g scaled by quantity/100; the sum is
// commutative so entry order never matters. Zero entries yield an empty
// map.
func (s *DashboardService) sumConsumption(ctx context.Context, userID uuid.UUID, logDate time.Time) (map[string]float64, error) {
	var logs []models.FoodLog
	if err := s.db.WithContext(ctx).
		Preload("Food.Nutrients.Nutrient").
		Where("user_id = ? AND log_date = ?", userID, normalizeDate(logDate)).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for _, entry := range logs {
		scale := entry.QuantityGrams / 100.0
		for _, fn := range entry.Food.Nutrients {
			totals[fn.Nutrient.Name] += fn.ValuePer100g * scale
		}
	}
	return totals, nil
}

// buildDetailedRows emits one row per nutrient that has a goal for this
// group; consumed nutrients without an RDA entry are excluded from the
// breakdown. Rows are ordered by nutrient name so repeated calls produce
// identical output.
func (s *DashboardService) buildDetailedRows(ctx context.Context, goals, consumed map[string]float64) ([]types.NutrientReport, error) {
	names := make([]string, 0, len(goals))
	for name := range goals {
		names = append(names, name)
	}

	rows := make([]types.NutrientReport, 0, len(names))
	if len(names) == 0 {
		return rows, nil
	}

	var nutrients []models.Nutrient
	if err := s.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("name").
		Find(&nutrients).Error; err != nil {
		return nil, fmt.Errorf("failed to load nutrients: %w", err)
	}

	for _, nutrient := range nutrients {
		goal := goals[nutrient.Name]
		eaten := consumed[nutrient.Name]
		rows = append(rows, types.NutrientReport{
			NutrientName: nutrient.Name,
			Unit:         nutrient.Unit,
			Goal:         round2(goal),
			Consumed:     round2(eaten),
			Gap:          round2(eaten - goal),
		})
	}
	return rows, nil
}
