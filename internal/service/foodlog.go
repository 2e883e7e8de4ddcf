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

// FoodLogService creates and lists food log entries. Entries are
// immutable once created.
type FoodLogService struct {
	db *gorm.DB
}

// Ensure FoodLogService implements IFoodLogService
var _ IFoodLogService = (*FoodLogService)(nil)

func NewFoodLogService(db *gorm.DB) *FoodLogService {
	return &FoodLogService{db: db}
}

// CreateLog validates the food reference and records the entry with its
// date normalized to midnight UTC.
func (s *FoodLogService) CreateLog(ctx context.Context, userID uuid.UUID, req *types.LogCreateRequest) (*models.FoodLog, error) {
	foodID, err := uuid.Parse(req.FoodID)
	if err != nil {
		return nil, ErrFoodNotFound
	}

	var food models.Food
	if err := s.db.WithContext(ctx).First(&food, "id = ?", foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	logDate, err := time.Parse("2006-01-02", req.LogDate)
	if err != nil {
		return nil, fmt.Errorf("invalid log_date, expected YYYY-MM-DD")
	}

	entry := models.FoodLog{
		UserID:        userID,
		FoodID:        food.ID,
		QuantityGrams: req.QuantityGrams,
		LogDate:       normalizeDate(logDate),
		MealType:      req.MealType,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create food log: %w", err)
	}

	entry.Food = food
	return &entry, nil
}

// ListLogs returns the user's entries for a date with per-entry calories
// computed from the food's Energy value per 100g.
func (s *FoodLogService) ListLogs(ctx context.Context, userID uuid.UUID, logDate time.Time) ([]types.FoodLogEntry, error) {
	var logs []models.FoodLog
	if err := s.db.WithContext(ctx).
		Preload("Food.Nutrients.Nutrient").
		Where("user_id = ? AND log_date = ?", userID, normalizeDate(logDate)).
		Order("created_at").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	entries := make([]types.FoodLogEntry, 0, len(logs))
	for _, l := range logs {
		var caloriesPer100g float64
		for _, fn := range l.Food.Nutrients {
			if fn.Nutrient.Name == "Energy" {
				caloriesPer100g = fn.ValuePer100g
				break
			}
		}
		entries = append(entries, types.FoodLogEntry{
			ID:            l.ID.String(),
			FoodName:      l.Food.Name,
			QuantityGrams: l.QuantityGrams,
			MealType:      l.MealType,
			Calories:      round2(caloriesPer100g * l.QuantityGrams / 100.0),
		})
	}
	return entries, nil
}
