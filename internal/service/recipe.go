package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
	"github.com/poshanlabs/nutrigap-backend/internal/types"
)

// quantityPatterns recognize "<number> <unit> <ingredient>" lines, most
// specific first. The final pattern catches bare "<number> <ingredient>"
// and assumes grams.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(cups?)\s+(.+)$`),
	regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(tbsp|tablespoons?)\s+(.+)$`),
	regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(tsp|teaspoons?)\s+(.+)$`),
	regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(grams?|g)\s+(.+)$`),
	regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(kg|kilograms?)\s+(.+)$`),
	regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(ml|milliliters?)\s+(.+)$`),
	regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(liters?|l)\s+(.+)$`),
	regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(.+)$`),
}

// gramsPerUnit holds approximate kitchen-unit conversions; liquids are
// assumed 1g/ml.
var gramsPerUnit = map[string]float64{
	"cup": 240, "cups": 240,
	"tbsp": 15, "tablespoon": 15, "tablespoons": 15,
	"tsp": 5, "teaspoon": 5, "teaspoons": 5,
	"g": 1, "gram": 1, "grams": 1,
	"kg": 1000, "kilogram": 1000, "kilograms": 1000,
	"ml": 1, "milliliter": 1, "milliliters": 1,
	"l": 1000, "liter": 1000, "liters": 1000,
}

// RecipeService parses free-form recipe lines and totals the nutrients
// of recognized ingredients using the same per-100g scaling rule as the
// consumption aggregator.
type RecipeService struct {
	db *gorm.DB
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// parseLine extracts quantity, unit and ingredient name from one line.
// Returns false when no pattern matches.
func parseLine(line string) (types.ParsedIngredient, bool) {
	line = strings.ToLower(strings.TrimSpace(line))
	for _, pattern := range quantityPatterns {
		match := pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if len(match) == 4 {
			quantity, _ := strconv.ParseFloat(match[1], 64)
			unit := match[2]
			return types.ParsedIngredient{
				Ingredient: strings.TrimSpace(match[3]),
				Quantity:   quantity,
				Unit:       unit,
				Grams:      quantity * gramsPerUnit[unit],
			}, true
		}
		quantity, _ := strconv.ParseFloat(match[1], 64)
		return types.ParsedIngredient{
			Ingredient: strings.TrimSpace(match[2]),
			Quantity:   quantity,
			Unit:       "g",
			Grams:      quantity,
		}, true
	}
	return types.ParsedIngredient{}, false
}

// AnalyzeRecipe parses the text line by line, resolves each ingredient
// against the food catalog and totals the nutrient contributions.
func (s *RecipeService) AnalyzeRecipe(ctx context.Context, recipeText string) (*types.RecipeAnalysis, error) {
	analysis := &types.RecipeAnalysis{
		Ingredients:    []types.ParsedIngredient{},
		TotalNutrients: map[string]float64{},
	}

	for _, line := range strings.Split(recipeText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parsed, ok := parseLine(line)
		if !ok {
			analysis.UnmatchedLines = append(analysis.UnmatchedLines, line)
			continue
		}

		food, err := s.findFood(ctx, parsed.Ingredient)
		if err != nil {
			return nil, err
		}
		if food != nil {
			parsed.Matched = true
			parsed.FoodName = food.Name
			parsed.Nutrients = map[string]float64{}
			scale := parsed.Grams / 100.0
			for _, fn := range food.Nutrients {
				value := fn.ValuePer100g * scale
				parsed.Nutrients[fn.Nutrient.Name] = round2(value)
				analysis.TotalNutrients[fn.Nutrient.Name] += value
			}
			analysis.TotalGrams += parsed.Grams
		}

		analysis.Ingredients = append(analysis.Ingredients, parsed)
	}

	for name, value := range analysis.TotalNutrients {
		analysis.TotalNutrients[name] = round2(value)
	}
	analysis.TotalGrams = round2(analysis.TotalGrams)

	return analysis, nil
}

// findFood resolves an ingredient name to a catalog food by substring
// match; nil without error when nothing matches.
func (s *RecipeService) findFood(ctx context.Context, ingredient string) (*models.Food, error) {
	var food models.Food
	err := s.db.WithContext(ctx).
		Preload("Nutrients.Nutrient").
		Where("LOWER(name) LIKE LOWER(?)", "%"+ingredient+"%").
		Order("name").
		First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &food, nil
}
