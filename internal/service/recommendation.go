package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
	"github.com/poshanlabs/nutrigap-backend/internal/types"
)

const (
	recommendationCacheTTL = 6 * time.Hour
	safetyMinimumCalories  = 1200.0
)

// activityMultipliers scale BMR into total daily energy expenditure.
var activityMultipliers = map[string]float64{
	models.ActivitySedentary:      1.2,
	models.ActivityModerate:       1.55,
	models.ActivityHeavy:          1.725,
	models.ActivityPregnant:       1.5,
	models.ActivityLactating0to6:  1.7,
	models.ActivityLactating6to12: 1.6,
	models.ActivityInfant:         1.0,
	models.ActivityChild:          1.4,
	models.ActivityAdolescent:     1.6,
}

// RecommendationService produces meal and exercise suggestions. The
// generative call is a capability with two outcomes: a structured payload
// or a failure that triggers the deterministic fallback plan. It is never
// a hard dependency.
type RecommendationService struct {
	apiKey string
	apiURL string
	client *http.Client
	redis  *redis.Client
}

// Ensure RecommendationService implements IRecommendationService
var _ IRecommendationService = (*RecommendationService)(nil)

func NewRecommendationService(apiKey, apiURL string, redisClient *redis.Client) *RecommendationService {
	if apiURL == "" {
		apiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	}
	return &RecommendationService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
		redis:  redisClient,
	}
}

// CalculateBMR uses the Mifflin-St Jeor equation.
func CalculateBMR(weightKg, heightCm float64, age int, gender string) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == models.GenderMale {
		return base + 5
	}
	return base - 161
}

// CalculateTDEE scales BMR by the profile's activity level.
func CalculateTDEE(bmr float64, activityLevel string) float64 {
	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		multiplier = 1.2
	}
	return bmr * multiplier
}

// WeightLossCalories applies a sustainable 500 kcal deficit with a
// safety floor.
func WeightLossCalories(tdee float64) float64 {
	target := tdee - 500
	if target < safetyMinimumCalories {
		return safetyMinimumCalories
	}
	return target
}

// BMICategory labels a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}

// Generate builds the recommendation for a complete profile. Results are
// cached per user; the external call failing downgrades to the fallback
// plan, never to an error.
func (s *RecommendationService) Generate(ctx context.Context, userID uuid.UUID, profile *models.UserProfile) (*types.RecommendationResponse, error) {
	var missing []string
	if profile.BirthDate == nil {
		missing = append(missing, "birth_date")
	}
	if profile.Gender == nil {
		missing = append(missing, "gender")
	}
	if profile.ActivityLevel == nil {
		missing = append(missing, "activity_level")
	}
	if profile.HeightCm == nil {
		missing = append(missing, "height_cm")
	}
	if profile.WeightKg == nil {
		missing = append(missing, "weight_kg")
	}
	if len(missing) > 0 {
		return nil, &ProfileIncompleteError{Missing: missing}
	}

	if cached := s.fromCache(ctx, userID); cached != nil {
		return cached, nil
	}

	age := CalculateAge(*profile.BirthDate, time.Now().UTC())
	bmr := CalculateBMR(*profile.WeightKg, *profile.HeightCm, age, *profile.Gender)
	tdee := CalculateTDEE(bmr, *profile.ActivityLevel)
	target := WeightLossCalories(tdee)
	heightM := *profile.HeightCm / 100
	bmi := *profile.WeightKg / (heightM * heightM)

	dietary := valueOr(profile.DietaryPreference, "balanced")
	budget := valueOr(profile.BudgetRange, "moderate")
	cuisine := valueOr(profile.PreferredCuisine, "Indian")

	resp := &types.RecommendationResponse{
		BMR:            round2(bmr),
		TDEE:           round2(tdee),
		TargetCalories: round2(target),
		BMI:            round2(bmi),
		BMICategory:    BMICategory(bmi),
		Preferences: map[string]string{
			"dietary": dietary,
			"budget":  budget,
			"cuisine": cuisine,
		},
	}

	plan, err := s.generatePlan(ctx, age, *profile.Gender, *profile.HeightCm, *profile.WeightKg, target, dietary, budget, cuisine)
	if err != nil {
		logrus.WithError(err).Warn("generative call failed, using fallback plan")
		plan = FallbackPlan(target, dietary, cuisine, budget)
		resp.Source = "fallback"
	} else {
		resp.Source = "generated"
	}
	resp.Plan = *plan

	s.toCache(ctx, userID, resp)
	return resp, nil
}

func valueOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func (s *RecommendationService) cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("recommendation:%s", userID)
}

func (s *RecommendationService) fromCache(ctx context.Context, userID uuid.UUID) *types.RecommendationResponse {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, s.cacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var resp types.RecommendationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *RecommendationService) toCache(ctx context.Context, userID uuid.UUID, resp *types.RecommendationResponse) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, s.cacheKey(userID), data, recommendationCacheTTL).Err(); err != nil {
		logrus.WithError(err).Warn("failed to cache recommendation")
	}
}

// InvalidateCache drops the cached recommendation, called on profile save.
func (s *RecommendationService) InvalidateCache(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, s.cacheKey(userID)).Err(); err != nil {
		logrus.WithError(err).Warn("failed to invalidate recommendation cache")
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (s *RecommendationService) generatePlan(ctx context.Context, age int, gender string, heightCm, weightKg, targetCalories float64, dietary, budget, cuisine string) (*types.RecommendationPlan, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("generative API key not configured")
	}

	prompt := buildPrompt(age, gender, heightCm, weightKg, targetCalories, dietary, budget, cuisine)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generative API request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generative API returned status %d", httpResp.StatusCode)
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var gemini geminiResponse
	if err := json.Unmarshal(respBody, &gemini); err != nil {
		return nil, fmt.Errorf("failed to decode generative response: %w", err)
	}
	if len(gemini.Candidates) == 0 || len(gemini.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty generative response")
	}

	var plan types.RecommendationPlan
	cleaned := extractJSON(gemini.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("generative response is not valid JSON: %w", err)
	}
	return &plan, nil
}

func buildPrompt(age int, gender string, heightCm, weightKg, targetCalories float64, dietary, budget, cuisine string) string {
	return fmt.Sprintf(`You are a certified nutritionist. Create a balanced meal and fitness guide.

Client details:
- %d years old, %s
- Current stats: %.0fcm height, %.0fkg
- Daily nutrition target: %.0f calories
- Food style: %s, Budget: %s, Cuisine: %s

Return ONLY valid JSON (no text before or after):
{
  "greeting": "Warm professional welcome message",
  "weekly_goal": "Realistic weekly fitness milestone",
  "meal_plan": {
    "breakfast": "Specific %s %s breakfast with portions - %d calories",
    "lunch": "Specific %s %s lunch with portions - %d calories",
    "dinner": "Specific %s %s dinner with portions - %d calories",
    "snack": "Healthy snack within %s budget - %d calories"
  },
  "exercise_plan": ["First recommended physical activity with duration", "Second recommended physical activity with duration"],
  "pro_tips": ["Evidence-based nutrition advice", "Practical lifestyle motivation tip"]
}`,
		age, gender, heightCm, weightKg, targetCalories, dietary, budget, cuisine,
		cuisine, dietary, int(targetCalories*0.25),
		cuisine, dietary, int(targetCalories*0.35),
		cuisine, dietary, int(targetCalories*0.30),
		budget, int(targetCalories*0.10))
}

// extractJSON strips markdown fences and any text around the outermost
// JSON object, which generative models are prone to adding.
func extractJSON(text string) string {
	text = strings.TrimSpace(strings.TrimPrefix(text, "\uFEFF"))
	if idx := strings.Index(text, "```"); idx != -1 {
		text = strings.TrimPrefix(text[idx+3:], "json")
		if end := strings.Index(text, "```"); end != -1 {
			text = text[:end]
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

// FallbackPlan is the deterministic plan used whenever the generative
// call fails or is unconfigured.
func FallbackPlan(targetCalories float64, dietary, cuisine, budget string) *types.RecommendationPlan {
	breakfastCal := int(targetCalories * 0.25)
	lunchCal := int(targetCalories * 0.35)
	dinnerCal := int(targetCalories * 0.30)
	snackCal := int(targetCalories * 0.10)

	var meals types.MealPlan
	cuisineLower := strings.ToLower(cuisine)
	dietaryLower := strings.ToLower(dietary)
	if cuisineLower == "indian" || cuisineLower == "mixed" {
		if dietaryLower == "vegetarian" || dietaryLower == "vegan" {
			meals = types.MealPlan{
				Breakfast: fmt.Sprintf("Oats upma (1 bowl) with vegetables and peanuts - %d cal", breakfastCal),
				Lunch:     fmt.Sprintf("Moong dal (1 cup) + brown rice (3/4 cup) + mixed vegetable sabzi + salad - %d cal", lunchCal),
				Dinner:    fmt.Sprintf("Paneer tikka (100g) + 2 multigrain rotis + cucumber raita - %d cal", dinnerCal),
				Snack:     fmt.Sprintf("Roasted chana (30g) or seasonal fruit (1 medium) - %d cal", snackCal),
			}
		} else {
			meals = types.MealPlan{
				Breakfast: fmt.Sprintf("Boiled eggs (2) + wheat toast (2 slices) + banana - %d cal", breakfastCal),
				Lunch:     fmt.Sprintf("Grilled chicken (120g) + brown rice (3/4 cup) + dal + vegetables - %d cal", lunchCal),
				Dinner:    fmt.Sprintf("Fish curry (100g) + 2 rotis + green salad - %d cal", dinnerCal),
				Snack:     fmt.Sprintf("Greek yogurt (150g) or mixed nuts (20g) - %d cal", snackCal),
			}
		}
	} else {
		meals = types.MealPlan{
			Breakfast: fmt.Sprintf("Oatmeal with berries and almonds - %d cal", breakfastCal),
			Lunch:     fmt.Sprintf("Grilled protein with quinoa and vegetables - %d cal", lunchCal),
			Dinner:    fmt.Sprintf("Baked protein with sweet potato and greens - %d cal", dinnerCal),
			Snack:     fmt.Sprintf("Hummus with vegetable sticks - %d cal", snackCal),
		}
	}

	return &types.RecommendationPlan{
		Greeting:   fmt.Sprintf("Welcome to your personalized %s nutrition and fitness guide!", dietary),
		WeeklyGoal: "Aim for steady progress with consistent healthy eating and regular movement.",
		MealPlan:   meals,
		ExercisePlan: []string{
			"Morning walk or jog for 30-40 minutes (moderate pace)",
			"Bodyweight strength training 3x per week: squats, push-ups, planks (15 minutes)",
		},
		ProTips: []string{
			"Drink a glass of water 20 minutes before meals to support hydration and satiety",
			"Progress happens with consistency, not perfection - small daily actions add up!",
		},
	}
}
