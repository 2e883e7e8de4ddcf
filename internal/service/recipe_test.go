package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poshanlabs/nutrigap-backend/internal/testhelpers"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantOK    bool
		wantGrams float64
		wantUnit  string
		wantName  string
	}{
		{"cups", "2 cups rice", true, 480, "cups", "rice"},
		{"single cup", "1 cup milk", true, 240, "cup", "milk"},
		{"tablespoons", "3 tbsp oil", true, 45, "tbsp", "oil"},
		{"teaspoons", "1 tsp salt", true, 5, "tsp", "salt"},
		{"grams", "250 g paneer", true, 250, "g", "paneer"},
		{"grams spelled out", "100 grams chicken", true, 100, "grams", "chicken"},
		{"kilograms", "0.5 kg potatoes", true, 500, "kg", "potatoes"},
		{"milliliters", "200 ml water", true, 200, "ml", "water"},
		{"liters", "1 l milk", true, 1000, "l", "milk"},
		{"bare number assumes grams", "150 dal", true, 150, "g", "dal"},
		{"decimal quantity", "1.5 cups flour", true, 360, "cups", "flour"},
		{"uppercase is normalized", "2 CUPS Rice", true, 480, "cups", "rice"},
		{"no quantity", "salt to taste", false, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := parseLine(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantGrams, parsed.Grams)
			assert.Equal(t, tt.wantUnit, parsed.Unit)
			assert.Equal(t, tt.wantName, parsed.Ingredient)
		})
	}
}

func TestAnalyzeRecipe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	testhelpers.CreateFood(t, db, "Rice, cooked", map[string]float64{"Energy": 130, "Protein": 2.7})
	testhelpers.CreateFood(t, db, "Dal, toor, cooked", map[string]float64{"Energy": 116, "Protein": 6.5})

	recipe := `# Simple khichdi
200 g rice
100 g dal

1 pinch asafoetida
stir well`

	analysis, err := svc.AnalyzeRecipe(ctx, recipe)
	require.NoError(t, err)

	// Blank lines and the comment header are skipped entirely.
	require.Len(t, analysis.Ingredients, 3)

	assert.True(t, analysis.Ingredients[0].Matched)
	assert.Equal(t, "Rice, cooked", analysis.Ingredients[0].FoodName)
	assert.Equal(t, 260.00, analysis.Ingredients[0].Nutrients["Energy"])

	assert.True(t, analysis.Ingredients[1].Matched)
	assert.Equal(t, "Dal, toor, cooked", analysis.Ingredients[1].FoodName)

	// Parsed but not in the catalog.
	assert.False(t, analysis.Ingredients[2].Matched)
	assert.Empty(t, analysis.Ingredients[2].FoodName)

	// Unparseable line is reported, not silently dropped.
	assert.Equal(t, []string{"stir well"}, analysis.UnmatchedLines)

	// Only matched ingredients count toward the totals.
	assert.Equal(t, 300.00, analysis.TotalGrams)
	assert.Equal(t, 376.00, analysis.TotalNutrients["Energy"])
	assert.Equal(t, 11.90, analysis.TotalNutrients["Protein"])
}

func TestAnalyzeRecipe_EmptyInput(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)

	analysis, err := svc.AnalyzeRecipe(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, analysis.Ingredients)
	assert.Zero(t, analysis.TotalGrams)
}
