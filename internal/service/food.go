package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
)

// FoodService reads the food reference catalog.
type FoodService struct {
	db *gorm.DB
}

// Ensure FoodService implements IFoodService
var _ IFoodService = (*FoodService)(nil)

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// GetFood fetches one food with its per-100g nutrient values.
func (s *FoodService) GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	var food models.Food
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Nutrients.Nutrient").
		First(&food, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return &food, nil
}

// ListFoods returns foods with optional case-insensitive name search and
// pagination.
func (s *FoodService) ListFoods(ctx context.Context, search string, offset, limit int) ([]models.Food, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := s.db.WithContext(ctx).Preload("Category").Order("name")
	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	var foods []models.Food
	if err := query.Offset(offset).Limit(limit).Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}
