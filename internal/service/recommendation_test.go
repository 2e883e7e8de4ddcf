package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
)

func TestCalculateBMR(t *testing.T) {
	// Mifflin-St Jeor: 10*70 + 6.25*175 - 5*30 = 1643.75
	assert.Equal(t, 1648.75, CalculateBMR(70, 175, 30, models.GenderMale))
	assert.Equal(t, 1482.75, CalculateBMR(70, 175, 30, models.GenderFemale))
	assert.Equal(t, 1482.75, CalculateBMR(70, 175, 30, models.GenderOther))
}

func TestCalculateTDEE(t *testing.T) {
	assert.Equal(t, 1200.0, CalculateTDEE(1000, models.ActivitySedentary))
	assert.Equal(t, 1550.0, CalculateTDEE(1000, models.ActivityModerate))
	assert.Equal(t, 1725.0, CalculateTDEE(1000, models.ActivityHeavy))
	// Unknown levels fall back to the sedentary multiplier.
	assert.Equal(t, 1200.0, CalculateTDEE(1000, "unknown"))
}

func TestWeightLossCalories(t *testing.T) {
	assert.Equal(t, 1800.0, WeightLossCalories(2300))
	// The deficit never drops below the safety floor.
	assert.Equal(t, 1200.0, WeightLossCalories(1500))
	assert.Equal(t, 1200.0, WeightLossCalories(900))
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, "Underweight", BMICategory(18.4))
	assert.Equal(t, "Normal weight", BMICategory(18.5))
	assert.Equal(t, "Normal weight", BMICategory(24.9))
	assert.Equal(t, "Overweight", BMICategory(25.0))
	assert.Equal(t, "Obese", BMICategory(30.0))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around object", `Here you go: {"a":1} enjoy!`, `{"a":1}`},
		{"fence with prose", "Sure!\n```json\n{\"a\":1}\n```\nDone.", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func completeProfile() *models.UserProfile {
	birth := time.Now().UTC().AddDate(-30, 0, -1)
	gender := models.GenderMale
	activity := models.ActivitySedentary
	height := 175.0
	weight := 70.0
	return &models.UserProfile{
		BirthDate:     &birth,
		Gender:        &gender,
		ActivityLevel: &activity,
		HeightCm:      &height,
		WeightKg:      &weight,
	}
}

func TestGenerate_IncompleteProfile(t *testing.T) {
	svc := NewRecommendationService("", "", nil)

	profile := completeProfile()
	profile.HeightCm = nil
	profile.WeightKg = nil

	_, err := svc.Generate(context.Background(), uuid.New(), profile)
	var incomplete *ProfileIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Missing, "height_cm")
	assert.Contains(t, incomplete.Missing, "weight_kg")
}

func TestGenerate_FallbackWithoutAPIKey(t *testing.T) {
	svc := NewRecommendationService("", "", nil)

	resp, err := svc.Generate(context.Background(), uuid.New(), completeProfile())
	require.NoError(t, err)

	assert.Equal(t, "fallback", resp.Source)
	assert.Equal(t, 1648.75, resp.BMR)
	assert.Equal(t, 1978.5, resp.TDEE)
	assert.Equal(t, 1478.5, resp.TargetCalories)
	assert.Equal(t, "Normal weight", resp.BMICategory)
	assert.NotEmpty(t, resp.Plan.MealPlan.Breakfast)
	assert.NotEmpty(t, resp.Plan.ExercisePlan)
}

func TestGenerate_FallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewRecommendationService("test-key", server.URL, nil)

	resp, err := svc.Generate(context.Background(), uuid.New(), completeProfile())
	require.NoError(t, err)
	assert.Equal(t, "fallback", resp.Source)
}

func TestGenerate_UsesGeneratedPlan(t *testing.T) {
	plan := map[string]interface{}{
		"greeting":    "Hello!",
		"weekly_goal": "Lose 0.5 kg",
		"meal_plan": map[string]string{
			"breakfast": "Poha",
			"lunch":     "Dal rice",
			"dinner":    "Roti sabzi",
			"snack":     "Fruit",
		},
		"exercise_plan": []string{"Walk 30 minutes"},
		"pro_tips":      []string{"Drink water"},
	}
	planJSON, err := json.Marshal(plan)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		payload := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{
						{"text": "```json\n" + string(planJSON) + "\n```"},
					},
				}},
			},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	svc := NewRecommendationService("test-key", server.URL, nil)

	resp, err := svc.Generate(context.Background(), uuid.New(), completeProfile())
	require.NoError(t, err)
	assert.Equal(t, "generated", resp.Source)
	assert.Equal(t, "Hello!", resp.Plan.Greeting)
	assert.Equal(t, "Poha", resp.Plan.MealPlan.Breakfast)
}

func TestFallbackPlan_Branches(t *testing.T) {
	t.Run("indian vegetarian", func(t *testing.T) {
		plan := FallbackPlan(2000, "vegetarian", "Indian", "moderate")
		assert.Contains(t, plan.MealPlan.Breakfast, "upma")
	})

	t.Run("indian non-vegetarian", func(t *testing.T) {
		plan := FallbackPlan(2000, "balanced", "Indian", "moderate")
		assert.Contains(t, plan.MealPlan.Breakfast, "eggs")
	})

	t.Run("other cuisine", func(t *testing.T) {
		plan := FallbackPlan(2000, "balanced", "Mediterranean", "moderate")
		assert.Contains(t, plan.MealPlan.Breakfast, "Oatmeal")
	})

	t.Run("calorie split", func(t *testing.T) {
		plan := FallbackPlan(2000, "balanced", "Indian", "moderate")
		assert.Contains(t, plan.MealPlan.Breakfast, "500 cal")
		assert.Contains(t, plan.MealPlan.Lunch, "700 cal")
		assert.Contains(t, plan.MealPlan.Dinner, "600 cal")
		assert.Contains(t, plan.MealPlan.Snack, "200 cal")
	})
}
