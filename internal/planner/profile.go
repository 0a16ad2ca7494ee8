/*
Package planner implements the rule-based diet and workout plan generation.
Every function in this package is pure: identical inputs always produce
identical outputs and nothing is shared between calls.
*/
package planner

import (
	"strings"
	"unicode"
)

/* =================================================================================
							ENUMERATIONS
=================================================================================*/

// Gender selects the Mifflin-St Jeor constant.
type Gender int

const (
	Female Gender = iota
	Male
)

func (g Gender) String() string {
	if g == Male {
		return "Male"
	}
	return "Female"
}

func (g Gender) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// Goal is the training objective. It drives the calorie adjustment, the macro
// split and the workout table lookup.
type Goal int

const (
	Maintenance Goal = iota
	FatLoss
	MuscleGain
	Strength
)

var goalNames = map[Goal]string{
	FatLoss:     "Fat Loss",
	MuscleGain:  "Muscle Gain",
	Strength:    "Strength",
	Maintenance: "Maintenance",
}

func (g Goal) String() string { return goalNames[g] }

func (g Goal) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// Goals returns every goal in form order.
func Goals() []Goal {
	return []Goal{FatLoss, MuscleGain, Strength, Maintenance}
}

// ActivityLevel is one of the five fixed exercise-frequency tiers.
type ActivityLevel int

const (
	Sedentary ActivityLevel = iota
	LightlyActive
	ModeratelyActive
	VeryActive
	ExtraActive
)

type activityTier struct {
	name       string
	label      string
	multiplier float64
}

// activityTiers is indexed by ActivityLevel.
var activityTiers = [...]activityTier{
	Sedentary:        {"Sedentary", "Sedentary (little/no exercise)", 1.2},
	LightlyActive:    {"LightlyActive", "Lightly active (1-3 days/week)", 1.375},
	ModeratelyActive: {"ModeratelyActive", "Moderately active (3-5 days/week)", 1.55},
	VeryActive:       {"VeryActive", "Very active (6-7 days/week)", 1.725},
	ExtraActive:      {"ExtraActive", "Extra active (intense daily / physical job)", 1.9},
}

// DefaultActivityLevel is used when the submitted level is not recognised.
const DefaultActivityLevel = LightlyActive

func (a ActivityLevel) valid() bool { return a >= Sedentary && a <= ExtraActive }

// Label returns the human readable description shown in the form.
func (a ActivityLevel) Label() string {
	if !a.valid() {
		return activityTiers[DefaultActivityLevel].label
	}
	return activityTiers[a].label
}

// Multiplier returns the TDEE scale factor for the tier.
func (a ActivityLevel) Multiplier() float64 {
	if !a.valid() {
		return activityTiers[DefaultActivityLevel].multiplier
	}
	return activityTiers[a].multiplier
}

func (a ActivityLevel) String() string { return a.Label() }

func (a ActivityLevel) MarshalText() ([]byte, error) { return []byte(a.Label()), nil }

// ActivityLevels returns the labels of all tiers, least to most active.
func ActivityLevels() []string {
	labels := make([]string, 0, len(activityTiers))
	for _, t := range activityTiers {
		labels = append(labels, t.label)
	}
	return labels
}

// DietType switches between the vegetarian and non-vegetarian meal tables.
type DietType int

const (
	NonVeg DietType = iota
	Veg
)

func (d DietType) String() string {
	if d == Veg {
		return "Veg"
	}
	return "Non-veg"
}

func (d DietType) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Equipment selects the home or gym workout table.
type Equipment int

const (
	Gym Equipment = iota
	Home
)

func (e Equipment) String() string {
	if e == Home {
		return "Home"
	}
	return "Gym"
}

func (e Equipment) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

/* =================================================================================
							PROFILE
=================================================================================*/

// UserProfile is the per-request input to the diet and workout generators.
type UserProfile struct {
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	HeightCm      float64       `json:"height_cm"`
	WeightKg      float64       `json:"weight_kg"`
	Goal          Goal          `json:"goal"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	DietType      DietType      `json:"diet_type"`
	Equipment     Equipment     `json:"equipment"`
}

/* =================================================================================
							PARSERS
	Form values arrive as free text. The parsers are lenient and never fail;
	unrecognised input maps to a default value.
=================================================================================*/

// ParseGender maps "male" (any case) to Male. Every other value uses the
// female formula.
func ParseGender(s string) Gender {
	if strings.EqualFold(strings.TrimSpace(s), "male") {
		return Male
	}
	return Female
}

// ParseGoal matches case-insensitive substrings so "Fat Loss", "fatloss" and
// "FAT" all resolve to FatLoss. Unmatched input is Maintenance.
func ParseGoal(s string) Goal {
	g := strings.ToLower(s)
	switch {
	case strings.Contains(g, "fat"):
		return FatLoss
	case strings.Contains(g, "gain"):
		return MuscleGain
	case strings.Contains(g, "strength"):
		return Strength
	default:
		return Maintenance
	}
}

// ParseActivityLevel accepts either the full label or the tier name in any
// case and with any punctuation ("ModeratelyActive", "moderately_active").
// ok is false when nothing matched and DefaultActivityLevel was returned.
func ParseActivityLevel(s string) (level ActivityLevel, ok bool) {
	key := lettersOnly(s)
	if key == "" {
		return DefaultActivityLevel, false
	}
	for i, t := range activityTiers {
		if key == lettersOnly(t.label) || key == lettersOnly(t.name) {
			return ActivityLevel(i), true
		}
	}
	return DefaultActivityLevel, false
}

// ParseDietType maps "veg" (any case) to Veg and everything else to NonVeg.
func ParseDietType(s string) DietType {
	if strings.EqualFold(strings.TrimSpace(s), "veg") {
		return Veg
	}
	return NonVeg
}

// ParseEquipment maps "home" (any case) to Home. Anything else trains at the gym.
func ParseEquipment(s string) Equipment {
	if strings.EqualFold(strings.TrimSpace(s), "home") {
		return Home
	}
	return Gym
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
