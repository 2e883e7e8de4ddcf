package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
	"github.com/poshanlabs/nutrigap-backend/internal/testhelpers"
)

// Runs the full gap pipeline against real Postgres to catch dialect
// differences the SQLite tests can't, like date column comparisons.
func TestGapPipelineOnPostgres(t *testing.T) {
	db := testhelpers.NewPostgresDB(t)
	ctx := context.Background()

	group := testhelpers.CreateGroup(t, db, "Man - Sedentary", models.GenderMale, models.ActivitySedentary, 18, 120)
	energy := testhelpers.CreateNutrient(t, db, "Energy", "kcal")
	testhelpers.CreateRDA(t, db, group, energy, 2320)

	user := testhelpers.CreateUser(t, db, "pg@example.com")
	testhelpers.CreateProfile(t, db, user.ID, testhelpers.ProfileOpts{
		BirthDate:     time.Now().UTC().AddDate(-30, 0, -1),
		Gender:        models.GenderMale,
		ActivityLevel: models.ActivitySedentary,
		HeightCm:      175,
		WeightKg:      70,
	})

	logDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	rice := testhelpers.CreateFood(t, db, "Rice, cooked", map[string]float64{"Energy": 130})
	testhelpers.CreateLog(t, db, user, rice, 200, models.MealLunch, logDate)

	report, err := NewDashboardService(db).GetDashboard(ctx, user.ID, logDate)
	require.NoError(t, err)
	assert.Equal(t, 2320.00, report.TotalCaloriesGoal)
	assert.Equal(t, 260.00, report.TotalCaloriesConsumed)

	entries, err := NewFoodLogService(db).ListLogs(ctx, user.ID, logDate)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 260.00, entries[0].Calories)
}
