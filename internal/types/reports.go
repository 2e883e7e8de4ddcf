package types

// NutrientReport is a single row of the gap analysis. Gap is
// consumed − goal: positive means over target, negative under.
type NutrientReport struct {
	NutrientName string  `json:"nutrient_name"`
	Unit         string  `json:"unit"`
	Goal         float64 `json:"goal"`
	Consumed     float64 `json:"consumed"`
	Gap          float64 `json:"gap"`
}

// DashboardReport is the full gap analysis for one user and date.
// The fat headline is intentionally asymmetric: the goal tracks the
// "Visible Fat" reference nutrient (added fat per NIN guidance) while
// consumption tracks total dietary "Fat".
type DashboardReport struct {
	LogDate                 string           `json:"log_date"`
	MatchedDemographicGroup string           `json:"matched_demographic_group"`
	TotalCaloriesGoal       float64          `json:"total_calories_goal"`
	TotalCaloriesConsumed   float64          `json:"total_calories_consumed"`
	TotalProteinGoal        float64          `json:"total_protein_goal"`
	TotalProteinConsumed    float64          `json:"total_protein_consumed"`
	TotalFatGoal            float64          `json:"total_fat_goal"`
	TotalFatConsumed        float64          `json:"total_fat_consumed"`
	TotalCarbsGoal          float64          `json:"total_carbs_goal"`
	TotalCarbsConsumed      float64          `json:"total_carbs_consumed"`
	DetailedAnalysis        []NutrientReport `json:"detailed_analysis"`
}

// FoodLogEntry is a single logged food with its computed calories,
// used by the log listing endpoint.
type FoodLogEntry struct {
	ID            string  `json:"id"`
	FoodName      string  `json:"food_name"`
	QuantityGrams float64 `json:"quantity_grams"`
	MealType      string  `json:"meal_type"`
	Calories      float64 `json:"calories"`
}

// MealPlan is the four-slot meal suggestion returned by the
// recommendation engine.
type MealPlan struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Snack     string `json:"snack"`
}

// RecommendationPlan is the structured suggestion payload, either
// generated externally or built from the deterministic fallback.
type RecommendationPlan struct {
	Greeting     string   `json:"greeting"`
	WeeklyGoal   string   `json:"weekly_goal"`
	MealPlan     MealPlan `json:"meal_plan"`
	ExercisePlan []string `json:"exercise_plan"`
	ProTips      []string `json:"pro_tips"`
}

// RecommendationResponse bundles the deterministic metrics with the plan.
type RecommendationResponse struct {
	BMR            float64            `json:"bmr"`
	TDEE           float64            `json:"tdee"`
	TargetCalories float64            `json:"target_calories"`
	BMI            float64            `json:"bmi"`
	BMICategory    string             `json:"bmi_category"`
	Preferences    map[string]string  `json:"preferences"`
	Plan           RecommendationPlan `json:"recommendations"`
	Source         string             `json:"source"`
}

// ParsedIngredient is one recognized recipe line with its resolved food.
type ParsedIngredient struct {
	Ingredient string             `json:"ingredient"`
	Quantity   float64            `json:"quantity"`
	Unit       string             `json:"unit"`
	Grams      float64            `json:"grams"`
	FoodName   string             `json:"food_name,omitempty"`
	Matched    bool               `json:"matched"`
	Nutrients  map[string]float64 `json:"nutrients,omitempty"`
}

// RecipeAnalysis is the result of parsing a recipe and totalling the
// nutrients of its recognized ingredients.
type RecipeAnalysis struct {
	Ingredients    []ParsedIngredient `json:"ingredients"`
	TotalGrams     float64            `json:"total_grams"`
	TotalNutrients map[string]float64 `json:"total_nutrients"`
	UnmatchedLines []string           `json:"unmatched_lines,omitempty"`
}
