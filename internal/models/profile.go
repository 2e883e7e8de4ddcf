package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted on a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Activity levels mirror the NIN reference tables.
const (
	ActivitySedentary      = "sedentary"
	ActivityModerate       = "moderate"
	ActivityHeavy          = "heavy"
	ActivityPregnant       = "pregnant"
	ActivityLactating0to6  = "lactating_0_6"
	ActivityLactating6to12 = "lactating_6_12"
	ActivityInfant         = "infant"
	ActivityChild          = "child"
	ActivityAdolescent     = "adolescent"
)

// UserProfile holds the physiological data used for demographic matching.
// DemographicGroupID is derived data: it is recomputed and rewritten on
// every profile save and must never be treated as a source of truth.
type UserProfile struct {
	ID                 uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	BirthDate          *time.Time     `gorm:"type:date" json:"birth_date"`
	Gender             *string        `gorm:"size:10" json:"gender"`
	ActivityLevel      *string        `gorm:"size:20" json:"activity_level"`
	HeightCm           *float64       `json:"height_cm"`
	WeightKg           *float64       `json:"weight_kg"`
	DietaryPreference  *string        `gorm:"size:50" json:"dietary_preference"`
	BudgetRange        *string        `gorm:"size:20" json:"budget_range"`
	PreferredCuisine   *string        `gorm:"size:50" json:"preferred_cuisine"`
	DemographicGroupID *uuid.UUID     `gorm:"type:varchar(36)" json:"demographic_group_id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
