package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FoodCategory struct {
	ID   uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (FoodCategory) TableName() string {
	return "food_categories"
}

func (c *FoodCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Food is administrator-managed reference data. Nutrient values hang off
// FoodNutrient rows expressed per 100 grams.
type Food struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name       string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	CategoryID uuid.UUID `gorm:"type:varchar(36)" json:"category_id"`

	Category  FoodCategory   `gorm:"foreignKey:CategoryID" json:"category"`
	Nutrients []FoodNutrient `gorm:"foreignKey:FoodID" json:"nutrients,omitempty"`
}

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type FoodNutrient struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	FoodID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"food_id"`
	NutrientID   uuid.UUID `gorm:"type:varchar(36);not null" json:"nutrient_id"`
	ValuePer100g float64   `gorm:"not null" json:"value_per_100g"`

	Nutrient Nutrient `gorm:"foreignKey:NutrientID" json:"nutrient"`
}

func (FoodNutrient) TableName() string {
	return "food_nutrients"
}

func (fn *FoodNutrient) BeforeCreate(tx *gorm.DB) error {
	if fn.ID == uuid.Nil {
		fn.ID = uuid.New()
	}
	return nil
}
