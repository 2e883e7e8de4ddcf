package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poshanlabs/nutrigap-backend/internal/testhelpers"
)

func TestFoodService(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewFoodService(db)
	ctx := context.Background()

	rice := testhelpers.CreateFood(t, db, "Rice, cooked", map[string]float64{"Energy": 130})
	testhelpers.CreateFood(t, db, "Dal, toor, cooked", map[string]float64{"Energy": 116})
	testhelpers.CreateFood(t, db, "Banana", map[string]float64{"Energy": 89})

	t.Run("get by id includes nutrients", func(t *testing.T) {
		food, err := svc.GetFood(ctx, rice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rice, cooked", food.Name)
		assert.Equal(t, "Cooked Preparations", food.Category.Name)
		require.Len(t, food.Nutrients, 1)
		assert.Equal(t, "Energy", food.Nutrients[0].Nutrient.Name)
	})

	t.Run("get unknown id", func(t *testing.T) {
		_, err := svc.GetFood(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrFoodNotFound)
	})

	t.Run("list all sorted by name", func(t *testing.T) {
		foods, err := svc.ListFoods(ctx, "", 0, 10)
		require.NoError(t, err)
		require.Len(t, foods, 3)
		assert.Equal(t, "Banana", foods[0].Name)
	})

	t.Run("case-insensitive search", func(t *testing.T) {
		foods, err := svc.ListFoods(ctx, "RICE", 0, 10)
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, "Rice, cooked", foods[0].Name)
	})

	t.Run("pagination", func(t *testing.T) {
		foods, err := svc.ListFoods(ctx, "", 1, 1)
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, "Dal, toor, cooked", foods[0].Name)
	})

	t.Run("oversized limit is capped", func(t *testing.T) {
		foods, err := svc.ListFoods(ctx, "", 0, 100000)
		require.NoError(t, err)
		assert.Len(t, foods, 3)
	})
}
