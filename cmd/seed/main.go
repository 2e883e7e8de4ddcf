package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/poshanlabs/nutrigap-backend/config"
	"github.com/poshanlabs/nutrigap-backend/internal/database"
	"github.com/poshanlabs/nutrigap-backend/internal/models"
)

// nutrientSeed is reference data from the NIN tables. Energy is kcal,
// everything else grams or milligrams as noted.
type nutrientSeed struct {
	Name string
	Unit string
}

var nutrientSeeds = []nutrientSeed{
	{Name: "Energy", Unit: "kcal"},
	{Name: "Protein", Unit: "g"},
	{Name: "Fat", Unit: "g"},
	{Name: "Visible Fat", Unit: "g"},
	{Name: "Carbohydrate", Unit: "g"},
	{Name: "Fiber", Unit: "g"},
	{Name: "Calcium", Unit: "mg"},
	{Name: "Iron", Unit: "mg"},
}

type groupSeed struct {
	Name          string
	Gender        string // empty means wildcard
	ActivityLevel string
	AgeMin        float64
	AgeMax        float64
	// RDAs by nutrient name.
	RDAs map[string]float64
}

var groupSeeds = []groupSeed{
	// Adult men by work intensity.
	{
		Name: "Man - Sedentary", Gender: models.GenderMale,
		ActivityLevel: models.ActivitySedentary, AgeMin: 18, AgeMax: 120,
		RDAs: map[string]float64{
			"Energy": 2320, "Protein": 60, "Visible Fat": 25,
			"Carbohydrate": 130, "Fiber": 40, "Calcium": 600, "Iron": 17,
		},
	},
	{
		Name: "Man - Moderate", Gender: models.GenderMale,
		ActivityLevel: models.ActivityModerate, AgeMin: 18, AgeMax: 120,
		RDAs: map[string]float64{
			"Energy": 2730, "Protein": 60, "Visible Fat": 30,
			"Carbohydrate": 130, "Fiber": 40, "Calcium": 600, "Iron": 17,
		},
	},
	{
		Name: "Man - Heavy", Gender: models.GenderMale,
		ActivityLevel: models.ActivityHeavy, AgeMin: 18, AgeMax: 120,
		RDAs: map[string]float64{
			"Energy": 3490, "Protein": 60, "Visible Fat": 40,
			"Carbohydrate": 130, "Fiber": 40, "Calcium": 600, "Iron": 17,
		},
	},

	// Adult women by work intensity and physiological state.
	{
		Name: "Woman - Sedentary", Gender: models.GenderFemale,
		ActivityLevel: models.ActivitySedentary, AgeMin: 18, AgeMax: 120,
		RDAs: map[string]float64{
			"Energy": 1900, "Protein": 55, "Visible Fat": 20,
			"Carbohydrate": 130, "Fiber": 30, "Calcium": 600, "Iron": 21,
		},
	},
	{
		Name: "Woman - Moderate", Gender: models.GenderFemale,
		ActivityLevel: models.ActivityModerate, AgeMin: 18, AgeMax: 120,
		RDAs: map[string]float64{
			"Energy": 2230, "Protein": 55, "Visible Fat": 25,
			"Carbohydrate": 130, "Fiber": 30, "Calcium": 600, "Iron": 21,
		},
	},
	{
		Name: "Woman - Heavy", Gender: models.GenderFemale,
		ActivityLevel: models.ActivityHeavy, AgeMin: 18, AgeMax: 120,
		RDAs: map[string]float64{
			"Energy": 2850, "Protein": 55, "Visible Fat": 30,
			"Carbohydrate": 130, "Fiber": 30, "Calcium": 600, "Iron": 21,
		},
	},
	{
		Name: "Woman - Pregnant", Gender: models.GenderFemale,
		ActivityLevel: models.ActivityPregnant, AgeMin: 18, AgeMax: 50,
		RDAs: map[string]float64{
			"Energy": 2250, "Protein": 78, "Visible Fat": 30,
			"Carbohydrate": 175, "Fiber": 30, "Calcium": 1200, "Iron": 35,
		},
	},
	{
		Name: "Woman - Lactating 0-6 months", Gender: models.GenderFemale,
		ActivityLevel: models.ActivityLactating0to6, AgeMin: 18, AgeMax: 50,
		RDAs: map[string]float64{
			"Energy": 2500, "Protein": 74, "Visible Fat": 30,
			"Carbohydrate": 210, "Fiber": 30, "Calcium": 1200, "Iron": 21,
		},
	},
	{
		Name: "Woman - Lactating 6-12 months", Gender: models.GenderFemale,
		ActivityLevel: models.ActivityLactating6to12, AgeMin: 18, AgeMax: 50,
		RDAs: map[string]float64{
			"Energy": 2420, "Protein": 68, "Visible Fat": 30,
			"Carbohydrate": 175, "Fiber": 30, "Calcium": 1200, "Iron": 21,
		},
	},

	// Infants and children; gender wildcards until adolescence.
	{
		Name:          "Infants 0-6 months",
		ActivityLevel: models.ActivityInfant, AgeMin: 0, AgeMax: 0.5,
		RDAs: map[string]float64{
			"Energy": 550, "Protein": 8, "Calcium": 300, "Iron": 3,
		},
	},
	{
		Name:          "Infants 6-12 months",
		ActivityLevel: models.ActivityInfant, AgeMin: 0.5, AgeMax: 1,
		RDAs: map[string]float64{
			"Energy": 670, "Protein": 10.5, "Calcium": 300, "Iron": 3,
		},
	},
	{
		Name:          "Children 1-3 years",
		ActivityLevel: models.ActivityChild, AgeMin: 1, AgeMax: 3,
		RDAs: map[string]float64{
			"Energy": 1110, "Protein": 12.5, "Visible Fat": 25,
			"Calcium": 500, "Iron": 8,
		},
	},
	{
		Name:          "Children 4-6 years",
		ActivityLevel: models.ActivityChild, AgeMin: 4, AgeMax: 6,
		RDAs: map[string]float64{
			"Energy": 1360, "Protein": 16, "Visible Fat": 25,
			"Calcium": 550, "Iron": 11,
		},
	},
	{
		Name:          "Children 7-9 years",
		ActivityLevel: models.ActivityChild, AgeMin: 7, AgeMax: 9,
		RDAs: map[string]float64{
			"Energy": 1700, "Protein": 23, "Visible Fat": 30,
			"Calcium": 650, "Iron": 15,
		},
	},

	// Adolescents; gendered from 10 years up.
	{
		Name: "Boys 10-12 years", Gender: models.GenderMale,
		ActivityLevel: models.ActivityAdolescent, AgeMin: 10, AgeMax: 12,
		RDAs: map[string]float64{
			"Energy": 2220, "Protein": 32, "Visible Fat": 35,
			"Calcium": 850, "Iron": 16,
		},
	},
	{
		Name: "Girls 10-12 years", Gender: models.GenderFemale,
		ActivityLevel: models.ActivityAdolescent, AgeMin: 10, AgeMax: 12,
		RDAs: map[string]float64{
			"Energy": 2060, "Protein": 33, "Visible Fat": 35,
			"Calcium": 850, "Iron": 28,
		},
	},
	{
		Name: "Boys 13-15 years", Gender: models.GenderMale,
		ActivityLevel: models.ActivityAdolescent, AgeMin: 13, AgeMax: 15,
		RDAs: map[string]float64{
			"Energy": 2860, "Protein": 45, "Visible Fat": 45,
			"Calcium": 1000, "Iron": 22,
		},
	},
	{
		Name: "Girls 13-15 years", Gender: models.GenderFemale,
		ActivityLevel: models.ActivityAdolescent, AgeMin: 13, AgeMax: 15,
		RDAs: map[string]float64{
			"Energy": 2400, "Protein": 43, "Visible Fat": 40,
			"Calcium": 1000, "Iron": 30,
		},
	},
	{
		Name: "Boys 16-17 years", Gender: models.GenderMale,
		ActivityLevel: models.ActivityAdolescent, AgeMin: 16, AgeMax: 17,
		RDAs: map[string]float64{
			"Energy": 3320, "Protein": 55, "Visible Fat": 50,
			"Calcium": 1050, "Iron": 26,
		},
	},
	{
		Name: "Girls 16-17 years", Gender: models.GenderFemale,
		ActivityLevel: models.ActivityAdolescent, AgeMin: 16, AgeMax: 17,
		RDAs: map[string]float64{
			"Energy": 2500, "Protein": 46, "Visible Fat": 45,
			"Calcium": 1050, "Iron": 32,
		},
	},
}

type foodSeed struct {
	Name string
	// Per-100g nutrient values by nutrient name.
	Nutrients map[string]float64
}

var foodSeeds = []foodSeed{
	{Name: "Rice, cooked", Nutrients: map[string]float64{
		"Energy": 130, "Protein": 2.7, "Fat": 0.3, "Carbohydrate": 28, "Fiber": 0.4, "Calcium": 10, "Iron": 0.2,
	}},
	{Name: "Chapati (whole wheat)", Nutrients: map[string]float64{
		"Energy": 297, "Protein": 11, "Fat": 7.5, "Carbohydrate": 46, "Fiber": 4.9, "Calcium": 48, "Iron": 3,
	}},
	{Name: "Dal, toor, cooked", Nutrients: map[string]float64{
		"Energy": 116, "Protein": 6.5, "Fat": 0.4, "Carbohydrate": 20, "Fiber": 5.1, "Calcium": 25, "Iron": 1.5,
	}},
	{Name: "Curd (plain yogurt)", Nutrients: map[string]float64{
		"Energy": 60, "Protein": 3.1, "Fat": 4, "Carbohydrate": 3, "Calcium": 149, "Iron": 0.2,
	}},
	{Name: "Egg, boiled", Nutrients: map[string]float64{
		"Energy": 155, "Protein": 13, "Fat": 11, "Carbohydrate": 1.1, "Calcium": 50, "Iron": 1.2,
	}},
	{Name: "Chicken curry", Nutrients: map[string]float64{
		"Energy": 175, "Protein": 14, "Fat": 11, "Carbohydrate": 4, "Calcium": 20, "Iron": 1.3,
	}},
	{Name: "Palak paneer", Nutrients: map[string]float64{
		"Energy": 180, "Protein": 8, "Fat": 14, "Carbohydrate": 6, "Fiber": 2.4, "Calcium": 245, "Iron": 2.5,
	}},
	{Name: "Vegetable sambar", Nutrients: map[string]float64{
		"Energy": 85, "Protein": 4, "Fat": 2.5, "Carbohydrate": 12, "Fiber": 3.2, "Calcium": 35, "Iron": 1.4,
	}},
	{Name: "Idli", Nutrients: map[string]float64{
		"Energy": 132, "Protein": 4.5, "Fat": 0.4, "Carbohydrate": 27, "Fiber": 1.2, "Calcium": 16, "Iron": 0.9,
	}},
	{Name: "Banana", Nutrients: map[string]float64{
		"Energy": 89, "Protein": 1.1, "Fat": 0.3, "Carbohydrate": 23, "Fiber": 2.6, "Calcium": 5, "Iron": 0.3,
	}},
	{Name: "Milk, whole", Nutrients: map[string]float64{
		"Energy": 61, "Protein": 3.2, "Fat": 3.3, "Carbohydrate": 4.8, "Calcium": 113, "Iron": 0.03,
	}},
	{Name: "Ghee", Nutrients: map[string]float64{
		"Energy": 900, "Visible Fat": 100, "Fat": 100,
	}},
}

const foodCategoryName = "Cooked Preparations"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	if err := Run(db); err != nil {
		logrus.WithError(err).Fatal("seeding failed")
	}

	logrus.Info("seeding complete")
}

// Run loads the reference data. Every insert is guarded by a lookup so
// reruns are safe.
func Run(db *gorm.DB) error {
	nutrients, err := seedNutrients(db)
	if err != nil {
		return err
	}
	if err := seedGroups(db, nutrients); err != nil {
		return err
	}
	return seedFoods(db, nutrients)
}

func seedNutrients(db *gorm.DB) (map[string]models.Nutrient, error) {
	byName := make(map[string]models.Nutrient, len(nutrientSeeds))
	for _, seed := range nutrientSeeds {
		var nutrient models.Nutrient
		err := db.Where("name = ?", seed.Name).First(&nutrient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			nutrient = models.Nutrient{Name: seed.Name, Unit: seed.Unit}
			err = db.Create(&nutrient).Error
		}
		if err != nil {
			return nil, err
		}
		byName[nutrient.Name] = nutrient
	}
	return byName, nil
}

func seedGroups(db *gorm.DB, nutrients map[string]models.Nutrient) error {
	for _, seed := range groupSeeds {
		var group models.DemographicGroup
		err := db.Where("name = ?", seed.Name).First(&group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			group = models.DemographicGroup{
				Name:          seed.Name,
				ActivityLevel: seed.ActivityLevel,
				AgeMinYears:   seed.AgeMin,
				AgeMaxYears:   seed.AgeMax,
			}
			if seed.Gender != "" {
				gender := seed.Gender
				group.Gender = &gender
			}
			err = db.Create(&group).Error
		}
		if err != nil {
			return err
		}

		for name, value := range seed.RDAs {
			nutrient, ok := nutrients[name]
			if !ok {
				logrus.WithField("nutrient", name).Warn("skipping RDA for unknown nutrient")
				continue
			}
			var existing models.RDA
			err := db.Where("demographic_group_id = ? AND nutrient_id = ?", group.ID, nutrient.ID).
				First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = db.Create(&models.RDA{
					DemographicGroupID: group.ID,
					NutrientID:         nutrient.ID,
					RecommendedValue:   value,
				}).Error
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedFoods(db *gorm.DB, nutrients map[string]models.Nutrient) error {
	var category models.FoodCategory
	err := db.Where("name = ?", foodCategoryName).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.FoodCategory{Name: foodCategoryName}
		err = db.Create(&category).Error
	}
	if err != nil {
		return err
	}

	for _, seed := range foodSeeds {
		var food models.Food
		err := db.Where("name = ?", seed.Name).First(&food).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			food = models.Food{Name: seed.Name, CategoryID: category.ID}
			err = db.Create(&food).Error
		}
		if err != nil {
			return err
		}

		for name, value := range seed.Nutrients {
			nutrient, ok := nutrients[name]
			if !ok {
				logrus.WithField("nutrient", name).Warn("skipping value for unknown nutrient")
				continue
			}
			var existing models.FoodNutrient
			err := db.Where("food_id = ? AND nutrient_id = ?", food.ID, nutrient.ID).
				First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = db.Create(&models.FoodNutrient{
					FoodID:       food.ID,
					NutrientID:   nutrient.ID,
					ValuePer100g: value,
				}).Error
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
