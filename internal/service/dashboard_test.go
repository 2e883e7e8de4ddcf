package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/poshanlabs/nutrigap-backend/internal/models"
	"github.com/poshanlabs/nutrigap-backend/internal/testhelpers"
)

// seedSedentaryMan creates the "Man - Sedentary" reference group with the
// NIN Energy and Protein goals plus a complete 30-year-old male profile.
func seedSedentaryMan(t *testing.T, db *gorm.DB, weightKg float64) *models.User {
	t.Helper()

	group := testhelpers.CreateGroup(t, db, "Man - Sedentary", models.GenderMale, models.ActivitySedentary, 18, 120)
	energy := testhelpers.CreateNutrient(t, db, "Energy", "kcal")
	protein := testhelpers.CreateNutrient(t, db, "Protein", "g")
	visibleFat := testhelpers.CreateNutrient(t, db, "Visible Fat", "g")
	testhelpers.CreateRDA(t, db, group, energy, 2320)
	testhelpers.CreateRDA(t, db, group, protein, 60)
	testhelpers.CreateRDA(t, db, group, visibleFat, 25)

	user := testhelpers.CreateUser(t, db, "sedentary@example.com")
	testhelpers.CreateProfile(t, db, user.ID, testhelpers.ProfileOpts{
		BirthDate:     time.Now().UTC().AddDate(-30, 0, -1),
		Gender:        models.GenderMale,
		ActivityLevel: models.ActivitySedentary,
		HeightCm:      175,
		WeightKg:      weightKg,
	})
	return user
}

func TestGetDashboard_NoLogs(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewDashboardService(db)
	ctx := context.Background()

	user := seedSedentaryMan(t, db, 70) // BMI ~22.9, no adjustment
	logDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	report, err := svc.GetDashboard(ctx, user.ID, logDate)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-30", report.LogDate)
	assert.Equal(t, "Man - Sedentary", report.MatchedDemographicGroup)
	assert.Equal(t, 2320.00, report.TotalCaloriesGoal)
	assert.Equal(t, 0.00, report.TotalCaloriesConsumed)

	// Empty day: every row reads consumed 0 and gap -goal.
	require.NotEmpty(t, report.DetailedAnalysis)
	for _, row := range report.DetailedAnalysis {
		assert.Equal(t, 0.00, row.Consumed, row.NutrientName)
		assert.Equal(t, -row.Goal, row.Gap, row.NutrientName)
	}
}

func TestGetDashboard_ObeseProfileCutsEnergy(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewDashboardService(db)
	ctx := context.Background()

	user := seedSedentaryMan(t, db, 95) // BMI ~31.0

	report, err := svc.GetDashboard(ctx, user.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1820.00, report.TotalCaloriesGoal)
}

func TestGetDashboard_ConsumptionScaling(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewDashboardService(db)
	ctx := context.Background()

	user := seedSedentaryMan(t, db, 70)
	logDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	rice := testhelpers.CreateFood(t, db, "Rice, cooked", map[string]float64{
		"Energy": 130, "Protein": 2.7,
	})
	testhelpers.CreateLog(t, db, user, rice, 200, models.MealLunch, logDate)

	report, err := svc.GetDashboard(ctx, user.ID, logDate)
	require.NoError(t, err)
	assert.Equal(t, 260.00, report.TotalCaloriesConsumed)
	assert.Equal(t, 5.40, report.TotalProteinConsumed)
}

func TestGetDashboard_CommutativeAndIdempotent(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewDashboardService(db)
	ctx := context.Background()

	user := seedSedentaryMan(t, db, 70)
	logDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	rice := testhelpers.CreateFood(t, db, "Rice, cooked", map[string]float64{"Energy": 130})
	dal := testhelpers.CreateFood(t, db, "Dal, cooked", map[string]float64{"Energy": 116})
	curd := testhelpers.CreateFood(t, db, "Curd", map[string]float64{"Energy": 60})

	testhelpers.CreateLog(t, db, user, curd, 150, models.MealSnack, logDate)
	testhelpers.CreateLog(t, db, user, rice, 200, models.MealLunch, logDate)
	testhelpers.CreateLog(t, db, user, dal, 100, models.MealDinner, logDate)

	first, err := svc.GetDashboard(ctx, user.ID, logDate)
	require.NoError(t, err)

	// 150*0.6 + 200*1.3 + 100*1.16 regardless of insertion order.
	assert.Equal(t, 466.00, first.TotalCaloriesConsumed)

	second, err := svc.GetDashboard(ctx, user.ID, logDate)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetDashboard_FatAsymmetry(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewDashboardService(db)
	ctx := context.Background()

	user := seedSedentaryMan(t, db, 70)
	logDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	// The goal headline tracks "Visible Fat" while consumption tracks
	// total "Fat". A food carrying only "Fat" must not count against the
	// visible fat goal row.
	eggs := testhelpers.CreateFood(t, db, "Egg, boiled", map[string]float64{"Fat": 11})
	testhelpers.CreateLog(t, db, user, eggs, 100, models.MealBreakfast, logDate)

	report, err := svc.GetDashboard(ctx, user.ID, logDate)
	require.NoError(t, err)
	assert.Equal(t, 25.00, report.TotalFatGoal)
	assert.Equal(t, 11.00, report.TotalFatConsumed)

	for _, row := range report.DetailedAnalysis {
		if row.NutrientName == "Visible Fat" {
			assert.Equal(t, 0.00, row.Consumed)
			assert.Equal(t, -25.00, row.Gap)
		}
	}
}

func TestGetDashboard_RowsSortedAndRounded(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewDashboardService(db)
	ctx := context.Background()

	user := seedSedentaryMan(t, db, 70)
	logDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	rice := testhelpers.CreateFood(t, db, "Rice, cooked", map[string]float64{"Protein": 2.666})
	testhelpers.CreateLog(t, db, user, rice, 123, models.MealLunch, logDate)

	report, err := svc.GetDashboard(ctx, user.ID, logDate)
	require.NoError(t, err)

	names := make([]string, 0, len(report.DetailedAnalysis))
	for _, row := range report.DetailedAnalysis {
		names = append(names, row.NutrientName)
	}
	assert.Equal(t, []string{"Energy", "Protein", "Visible Fat"}, names)

	for _, row := range report.DetailedAnalysis {
		if row.NutrientName == "Protein" {
			// 2.666 * 1.23 = 3.27918, rounded to 2dp.
			assert.Equal(t, 3.28, row.Consumed)
			assert.Equal(t, -56.72, row.Gap)
		}
	}
}

func TestGetDashboard_ProfileErrors(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewDashboardService(db)
	ctx := context.Background()

	t.Run("missing profile", func(t *testing.T) {
		user := testhelpers.CreateUser(t, db, "noprofile@example.com")
		_, err := svc.GetDashboard(ctx, user.ID, time.Now().UTC())
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("incomplete profile names missing fields", func(t *testing.T) {
		user := testhelpers.CreateUser(t, db, "incomplete@example.com")
		testhelpers.CreateProfile(t, db, user.ID, testhelpers.ProfileOpts{
			BirthDate:     time.Now().UTC().AddDate(-30, 0, -1),
			Gender:        models.GenderMale,
			ActivityLevel: models.ActivitySedentary,
		})

		_, err := svc.GetDashboard(ctx, user.ID, time.Now().UTC())
		var incomplete *ProfileIncompleteError
		require.ErrorAs(t, err, &incomplete)
		assert.Contains(t, incomplete.Missing, "weight_kg")
	})

	t.Run("no demographic match", func(t *testing.T) {
		user := testhelpers.CreateUser(t, db, "nomatch@example.com")
		testhelpers.CreateProfile(t, db, user.ID, testhelpers.ProfileOpts{
			BirthDate:     time.Now().UTC().AddDate(-30, 0, -1),
			Gender:        models.GenderFemale,
			ActivityLevel: models.ActivityHeavy,
			WeightKg:      60,
		})

		_, err := svc.GetDashboard(ctx, user.ID, time.Now().UTC())
		var noMatch *NoDemographicMatchError
		assert.ErrorAs(t, err, &noMatch)
	})
}

func TestGetDashboard_OtherDaysExcluded(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewDashboardService(db)
	ctx := context.Background()

	user := seedSedentaryMan(t, db, 70)
	logDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	rice := testhelpers.CreateFood(t, db, "Rice, cooked", map[string]float64{"Energy": 130})
	testhelpers.CreateLog(t, db, user, rice, 200, models.MealLunch, logDate.AddDate(0, 0, -1))

	report, err := svc.GetDashboard(ctx, user.ID, logDate)
	require.NoError(t, err)
	assert.Equal(t, 0.00, report.TotalCaloriesConsumed)
}
