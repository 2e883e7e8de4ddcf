package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal type tags on a log entry.
const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
	MealSnack     = "Snack"
)

// FoodLog records a quantity of a food eaten on a calendar date.
// Entries are immutable once created.
type FoodLog struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index:idx_food_logs_user_date" json:"user_id"`
	FoodID        uuid.UUID `gorm:"type:varchar(36);not null" json:"food_id"`
	QuantityGrams float64   `gorm:"not null" json:"quantity_grams"`
	LogDate       time.Time `gorm:"type:date;not null;index:idx_food_logs_user_date" json:"log_date"`
	MealType      string    `gorm:"size:20;not null" json:"meal_type"`
	CreatedAt     time.Time `json:"created_at"`

	Food Food `gorm:"foreignKey:FoodID" json:"food"`
}

func (FoodLog) TableName() string {
	return "food_logs"
}

func (l *FoodLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
