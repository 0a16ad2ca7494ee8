package planner

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleProfile is a 30 year old, 175cm, 75kg male used across the tests.
func sampleProfile(goal Goal, diet DietType) UserProfile {
	return UserProfile{
		Age:           30,
		Gender:        Male,
		HeightCm:      175,
		WeightKg:      75,
		Goal:          goal,
		ActivityLevel: ModeratelyActive,
		DietType:      diet,
		Equipment:     Gym,
	}
}

/* ─── BMI ────────────────────────────────────────────────────────────── */

func TestComputeBMI(t *testing.T) {
	cases := []struct {
		name     string
		height   float64
		weight   float64
		expected float64
	}{
		{"reference", 175, 75, 24.5},
		{"short and light", 150, 45, 20.0},
		{"tall", 190, 100, 27.7},
		{"just above a half tenth", 200, 40.2, 10.1},
		{"just below a half tenth", 200, 41.4, 10.3},
		{"zero height", 0, 75, 0},
		{"negative height", -10, 75, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeBMI(tc.height, tc.weight))
		})
	}
}

/* ─── BMR ────────────────────────────────────────────────────────────── */

// 10*75 + 6.25*175 - 5*30 = 1693.75, +5 male, -161 female.
func TestComputeBMR(t *testing.T) {
	assert.Equal(t, 1699, ComputeBMR(Male, 75, 175, 30))
	assert.Equal(t, 1533, ComputeBMR(Female, 75, 175, 30))
}

func TestComputeBMR_GenderParsing(t *testing.T) {
	assert.Equal(t, 1699, ComputeBMR(ParseGender("MALE"), 75, 175, 30))
	assert.Equal(t, 1533, ComputeBMR(ParseGender("Female"), 75, 175, 30))
	// Anything that is not "male" falls through to the female constant.
	assert.Equal(t, 1533, ComputeBMR(ParseGender("mail"), 75, 175, 30))
}

/* ─── TDEE ───────────────────────────────────────────────────────────── */

func TestComputeTDEE(t *testing.T) {
	cases := []struct {
		level    ActivityLevel
		expected int
	}{
		{Sedentary, 2039},        // 1699 * 1.2 = 2038.8
		{LightlyActive, 2336},    // 1699 * 1.375 = 2336.125
		{ModeratelyActive, 2633}, // 1699 * 1.55 = 2633.45
		{VeryActive, 2931},       // 1699 * 1.725 = 2930.775
		{ExtraActive, 3228},      // 1699 * 1.9 = 3228.1
	}

	for _, tc := range cases {
		t.Run(tc.level.Label(), func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeTDEE(1699, tc.level))
		})
	}
}

func TestComputeTDEE_UnknownLevelUsesLightlyActive(t *testing.T) {
	level, ok := ParseActivityLevel("couch potato")
	assert.False(t, ok)
	assert.Equal(t, ComputeTDEE(1699, LightlyActive), ComputeTDEE(1699, level))
	assert.Equal(t, 2336, ComputeTDEE(1699, ActivityLevel(42)))
}

/* ─── Macros ─────────────────────────────────────────────────────────── */

func TestComputeMacros(t *testing.T) {
	cases := []struct {
		goal     Goal
		expected Macros
	}{
		{FatLoss, Macros{ProteinG: 120, CarbsG: 150, FatsG: 60}},
		{MuscleGain, Macros{ProteinG: 150, CarbsG: 300, FatsG: 75}},
		{Strength, Macros{ProteinG: 135, CarbsG: 225, FatsG: 75}},
		{Maintenance, Macros{ProteinG: 120, CarbsG: 225, FatsG: 68}},
	}

	for _, tc := range cases {
		t.Run(tc.goal.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeMacros(tc.goal, 75))
		})
	}
}

func TestComputeMacros_NeverNegative(t *testing.T) {
	m := ComputeMacros(FatLoss, -20)
	assert.Zero(t, m.ProteinG)
	assert.Zero(t, m.CarbsG)
	assert.Zero(t, m.FatsG)
}

/* ─── Calorie target ─────────────────────────────────────────────────── */

func TestCalorieTarget_FatLossFloor(t *testing.T) {
	for tdee := 0; tdee <= 1600; tdee++ {
		if got := CalorieTarget(FatLoss, tdee); got != 1200 {
			t.Fatalf("CalorieTarget(FatLoss, %d) = %d, want 1200", tdee, got)
		}
	}
	assert.Equal(t, 1201, CalorieTarget(FatLoss, 1601))
}

func TestCalorieTarget_ByGoal(t *testing.T) {
	assert.Equal(t, 2233, CalorieTarget(FatLoss, 2633))
	assert.Equal(t, 2933, CalorieTarget(MuscleGain, 2633))
	assert.Equal(t, 2633, CalorieTarget(Strength, 2633))
	assert.Equal(t, 2633, CalorieTarget(Maintenance, 2633))
}

/* ─── Full plan ──────────────────────────────────────────────────────── */

func TestGenerateDietPlan(t *testing.T) {
	plan, err := GenerateDietPlan(sampleProfile(FatLoss, NonVeg))
	require.NoError(t, err)

	assert.Equal(t, 24.5, plan.BMI)
	assert.Equal(t, 1699, plan.BMR)
	assert.Equal(t, 2633, plan.TDEE)
	assert.Equal(t, 2233, plan.CalorieTarget)
	assert.Equal(t, -400, plan.Adjustment)
	assert.Equal(t, "Your TDEE is 2633 kcal. The target of 2233 kcal is a 400 kcal deficit for your goal.", plan.AdjustmentNote)
	assert.Equal(t, Macros{ProteinG: 120, CarbsG: 150, FatsG: 60}, plan.Macros)
	assert.Len(t, plan.Meals, 4)
	assert.Contains(t, plan.Meals[Breakfast], "Oats + 3 boiled egg whites + 1 yolk (approx. 350-400 kcal)")
	assert.Equal(t,
		"Plan based on Moderately active (3-5 days/week). Adjust portions to hit the exact calorie and macro targets.",
		plan.Notes)
}

func TestGenerateDietPlan_VegTable(t *testing.T) {
	plan, err := GenerateDietPlan(sampleProfile(MuscleGain, Veg))
	require.NoError(t, err)

	assert.Equal(t, 300, plan.Adjustment)
	assert.Contains(t, plan.AdjustmentNote, "is a 300 kcal surplus")
	assert.Len(t, plan.Meals[Breakfast], 3)
	assert.Equal(t, "Sprouts salad (1 cup)", plan.Meals[Snacks][0])
}

func TestGenerateDietPlan_MaintenanceAdjustment(t *testing.T) {
	plan, err := GenerateDietPlan(sampleProfile(Maintenance, NonVeg))
	require.NoError(t, err)

	assert.Zero(t, plan.Adjustment)
	assert.Equal(t, "Your TDEE is 2633 kcal. The target of 2633 kcal is a 0 kcal surplus for your goal.", plan.AdjustmentNote)
}

func TestGenerateDietPlan_InvalidMeasurements(t *testing.T) {
	cases := []struct {
		name   string
		height float64
		weight float64
	}{
		{"zero height", 0, 75},
		{"zero weight", 175, 0},
		{"negative height", -175, 75},
		{"negative weight", 175, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := sampleProfile(FatLoss, Veg)
			p.HeightCm, p.WeightKg = tc.height, tc.weight

			plan, err := GenerateDietPlan(p)
			assert.ErrorIs(t, err, ErrInvalidMeasurements)
			assert.Nil(t, plan)
		})
	}
}

func TestGenerateDietPlan_Idempotent(t *testing.T) {
	p := sampleProfile(Strength, Veg)

	first, err := GenerateDietPlan(p)
	require.NoError(t, err)
	second, err := GenerateDietPlan(p)
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, string(a), string(b))
}

func TestGenerateDietPlan_MealsAreCopies(t *testing.T) {
	plan, err := GenerateDietPlan(sampleProfile(FatLoss, Veg))
	require.NoError(t, err)
	plan.Meals[Lunch][0] = "pizza"

	again, err := GenerateDietPlan(sampleProfile(FatLoss, Veg))
	require.NoError(t, err)
	assert.NotEqual(t, "pizza", again.Meals[Lunch][0])
}

func TestDietPlan_JSONShape(t *testing.T) {
	plan, err := GenerateDietPlan(sampleProfile(FatLoss, Veg))
	require.NoError(t, err)

	raw, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"bmi", "bmr", "tdee", "calorie_target", "adjustment", "adjustment_note", "macros", "meals", "notes"} {
		assert.Contains(t, decoded, key)
	}
	assert.Contains(t, decoded["macros"], "protein_g")
	assert.Contains(t, decoded["meals"], "Breakfast")
	assert.Contains(t, decoded["meals"], "Snacks")
}

func TestMealPlan_JSONKeepsEatingOrder(t *testing.T) {
	raw, err := json.Marshal(MealsFor(NonVeg))
	require.NoError(t, err)

	out := string(raw)
	breakfast := strings.Index(out, `"Breakfast":`)
	lunch := strings.Index(out, `"Lunch":`)
	snacks := strings.Index(out, `"Snacks":`)
	dinner := strings.Index(out, `"Dinner":`)
	require.True(t, breakfast >= 0 && lunch >= 0 && snacks >= 0 && dinner >= 0, out)
	assert.True(t, breakfast < lunch && lunch < snacks && snacks < dinner, out)

	var decoded MealPlan
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, MealsFor(NonVeg), decoded)
}
