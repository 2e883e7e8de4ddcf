package types

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileRequest carries the physiological stats used for demographic
// matching. Dates use YYYY-MM-DD.
type ProfileRequest struct {
	BirthDate         string   `json:"birth_date" binding:"required"`
	Gender            string   `json:"gender" binding:"required,oneof=male female other"`
	ActivityLevel     string   `json:"activity_level" binding:"required"`
	HeightCm          float64  `json:"height_cm" binding:"required,gt=0"`
	WeightKg          float64  `json:"weight_kg" binding:"required,gt=0"`
	DietaryPreference *string  `json:"dietary_preference"`
	BudgetRange       *string  `json:"budget_range"`
	PreferredCuisine  *string  `json:"preferred_cuisine"`
}

// LogCreateRequest is the payload for logging an eaten food.
type LogCreateRequest struct {
	FoodID        string  `json:"food_id" binding:"required"`
	QuantityGrams float64 `json:"quantity_grams" binding:"required,gt=0"`
	LogDate       string  `json:"log_date" binding:"required"`
	MealType      string  `json:"meal_type" binding:"required,oneof=Breakfast Lunch Dinner Snack"`
}

// RecipeAnalyzeRequest holds free-form recipe text, one ingredient per line.
type RecipeAnalyzeRequest struct {
	RecipeText string `json:"recipe_text" binding:"required"`
}
