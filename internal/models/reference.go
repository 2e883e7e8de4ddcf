package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DemographicGroup is a named NIN reference bucket. Gender is nullable:
// pre-adolescent groups carry no gender and act as wildcards. Age ranges
// are inclusive and fractional (0.5 = six months). Rows sharing a
// gender+activity tag must not overlap; the seeder curates this.
type DemographicGroup struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name          string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Gender        *string   `gorm:"size:10" json:"gender"`
	ActivityLevel string    `gorm:"size:20;not null" json:"activity_level"`
	AgeMinYears   float64   `gorm:"not null" json:"age_min_years"`
	AgeMaxYears   float64   `gorm:"not null" json:"age_max_years"`
}

func (DemographicGroup) TableName() string {
	return "demographic_groups"
}

func (g *DemographicGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Nutrient is static reference data. Energy uses the "kcal" unit.
type Nutrient struct {
	ID   uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Unit string    `gorm:"size:10;not null" json:"unit"`
}

func (n *Nutrient) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// RDA maps (demographic group, nutrient) to a recommended daily value.
// Exactly one row per pair; the seeder checks before inserting.
type RDA struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	DemographicGroupID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_rda_group_nutrient,unique" json:"demographic_group_id"`
	NutrientID         uuid.UUID `gorm:"type:varchar(36);not null;index:idx_rda_group_nutrient,unique" json:"nutrient_id"`
	RecommendedValue   float64   `gorm:"not null" json:"recommended_value"`

	Nutrient Nutrient `gorm:"foreignKey:NutrientID" json:"nutrient"`
}

func (RDA) TableName() string {
	return "rda_entries"
}

func (r *RDA) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
