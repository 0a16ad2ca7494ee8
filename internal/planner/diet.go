package planner

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Calorie adjustments applied on top of TDEE.
const (
	fatLossDeficit    = 400
	muscleGainSurplus = 300
	minCalorieTarget  = 1200
)

// ErrInvalidMeasurements is the only validation failure of GenerateDietPlan.
var ErrInvalidMeasurements = errors.New("height and weight must be positive")

// InvalidMeasurementsMessage is what the form shows for ErrInvalidMeasurements.
const InvalidMeasurementsMessage = "Please enter valid height and weight."

// Macros are the daily gram targets. All values are non-negative.
type Macros struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatsG    int `json:"fats_g"`
}

// DietPlan is the full output of GenerateDietPlan. It is never modified after
// it has been returned.
type DietPlan struct {
	BMI           float64  `json:"bmi"`
	BMR           int      `json:"bmr"`
	TDEE          int      `json:"tdee"`
	CalorieTarget int      `json:"calorie_target"`
	Adjustment    int      `json:"adjustment"`
	Macros        Macros   `json:"macros"`
	Meals         MealPlan `json:"meals"`
	Notes         string   `json:"notes"`

	// AdjustmentNote spells out Adjustment for display.
	AdjustmentNote string `json:"adjustment_note"`
}

// macroRatio holds grams per kilogram of body weight.
type macroRatio struct {
	protein, carbs, fats float64
}

var macroRatios = map[Goal]macroRatio{
	FatLoss:     {1.6, 2.0, 0.8},
	MuscleGain:  {2.0, 4.0, 1.0},
	Strength:    {1.8, 3.0, 1.0},
	Maintenance: {1.6, 3.0, 0.9},
}

// round rounds half to even, so 2.5 becomes 2.
func round(x float64) int {
	return int(math.RoundToEven(x))
}

// ComputeBMI returns kg/m² rounded to one decimal, or 0 when heightCm is not
// positive.
func ComputeBMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return roundTenths(weightKg / (m * m))
}

// roundTenths rounds the exact binary value of x to one decimal, ties to
// even. Scaling by 10 first would round the product instead.
func roundTenths(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// ComputeBMR applies the Mifflin-St Jeor equation.
func ComputeBMR(g Gender, weightKg, heightCm float64, age int) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if g == Male {
		bmr += 5
	} else {
		bmr -= 161
	}
	return round(bmr)
}

// ComputeTDEE scales the BMR by the activity multiplier.
func ComputeTDEE(bmr int, level ActivityLevel) int {
	return round(float64(bmr) * level.Multiplier())
}

// ComputeMacros converts the goal's per-kilogram ratios into daily grams.
func ComputeMacros(goal Goal, weightKg float64) Macros {
	r, ok := macroRatios[goal]
	if !ok {
		r = macroRatios[Maintenance]
	}
	return Macros{
		ProteinG: nonNegative(round(r.protein * weightKg)),
		CarbsG:   nonNegative(round(r.carbs * weightKg)),
		FatsG:    nonNegative(round(r.fats * weightKg)),
	}
}

// CalorieTarget adjusts TDEE for the goal. Fat loss never drops below 1200 kcal.
func CalorieTarget(goal Goal, tdee int) int {
	switch goal {
	case FatLoss:
		return max(minCalorieTarget, tdee-fatLossDeficit)
	case MuscleGain:
		return tdee + muscleGainSurplus
	default:
		return tdee
	}
}

// GenerateDietPlan builds the complete plan for p. The only error is
// ErrInvalidMeasurements.
func GenerateDietPlan(p UserProfile) (*DietPlan, error) {
	if p.HeightCm <= 0 || p.WeightKg <= 0 {
		return nil, ErrInvalidMeasurements
	}

	bmr := ComputeBMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	tdee := ComputeTDEE(bmr, p.ActivityLevel)
	target := CalorieTarget(p.Goal, tdee)

	return &DietPlan{
		BMI:            ComputeBMI(p.HeightCm, p.WeightKg),
		BMR:            bmr,
		TDEE:           tdee,
		CalorieTarget:  target,
		Adjustment:     target - tdee,
		Macros:         ComputeMacros(p.Goal, p.WeightKg),
		Meals:          MealsFor(p.DietType),
		Notes:          fmt.Sprintf("Plan based on %s. Adjust portions to hit the exact calorie and macro targets.", p.ActivityLevel.Label()),
		AdjustmentNote: adjustmentNote(tdee, target),
	}, nil
}

// adjustmentNote describes the gap between TDEE and the target. A target
// equal to TDEE reads as a 0 kcal surplus.
func adjustmentNote(tdee, target int) string {
	kind, diff := "surplus", target-tdee
	if target < tdee {
		kind, diff = "deficit", tdee-target
	}
	return fmt.Sprintf("Your TDEE is %d kcal. The target of %d kcal is a %d kcal %s for your goal.", tdee, target, diff, kind)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
