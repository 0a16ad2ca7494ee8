package planner

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MealSlot is one of the four daily eating occasions.
type MealSlot int

const (
	Breakfast MealSlot = iota
	Lunch
	Snacks
	Dinner
)

var mealSlotNames = [...]string{
	Breakfast: "Breakfast",
	Lunch:     "Lunch",
	Snacks:    "Snacks",
	Dinner:    "Dinner",
}

func (m MealSlot) String() string {
	if m < Breakfast || m > Dinner {
		return ""
	}
	return mealSlotNames[m]
}

func (m MealSlot) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MealSlot) UnmarshalText(b []byte) error {
	for i, n := range mealSlotNames {
		if strings.EqualFold(n, string(b)) {
			*m = MealSlot(i)
			return nil
		}
	}
	return &UnknownKeyError{Kind: "meal slot", Key: string(b)}
}

// MealSlots returns the slots in the order they are eaten.
func MealSlots() []MealSlot {
	return []MealSlot{Breakfast, Lunch, Snacks, Dinner}
}

// MealPlan maps each slot to the options the user picks one from.
type MealPlan map[MealSlot][]string

var vegMeals = MealPlan{
	Breakfast: {
		"Oats porridge + milk + banana (approx. 350-400 kcal)",
		"Moong dal cheela (2 pcs) + chutney (approx. 300-350 kcal)",
		"Paneer stuffed paratha (1 pc) + curd (approx. 400-450 kcal)",
	},
	Lunch: {
		"Dal (1 katori) + brown rice (1 cup) + mixed sabzi (1 katori) + salad (approx. 500-600 kcal)",
		"Chole (1 katori) + roti (2 pcs) + salad (approx. 450-550 kcal)",
	},
	Snacks: {
		"Sprouts salad (1 cup)",
		"Roasted chana (1/2 cup)",
	},
	Dinner: {
		"Soya curry (1 katori) + roti (2 pcs) (approx. 450-550 kcal)",
		"Mixed vegetable khichdi (1 bowl) + curd (approx. 400-500 kcal)",
	},
}

var nonVegMeals = MealPlan{
	Breakfast: {
		"Oats + 3 boiled egg whites + 1 yolk (approx. 350-400 kcal)",
		"Egg omelette (2 whole eggs) + whole wheat toast (1 pc) (approx. 300-350 kcal)",
	},
	Lunch: {
		"Grilled chicken (150g) + brown rice (1 cup) + salad (approx. 550-650 kcal)",
		"Egg curry (2 eggs) + roti (2 pcs) + salad (approx. 500-600 kcal)",
	},
	Snacks: {
		"Boiled eggs (2)",
		"Greek yogurt (1 cup) + fruit",
	},
	Dinner: {
		"Grilled fish (150g) + steamed vegetables (approx. 400-500 kcal)",
		"Chicken soup + roti (2 pcs) (approx. 450-550 kcal)",
	},
}

// MealsFor returns a copy of the meal table for the diet type, so callers can
// not alter the shared tables.
func MealsFor(d DietType) MealPlan {
	src := nonVegMeals
	if d == Veg {
		src = vegMeals
	}
	return src.clone()
}

// MarshalJSON writes the slots in the order they are eaten rather than
// sorted by name.
func (m MealPlan) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, slot := range MealSlots() {
		options, ok := m[slot]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(slot.String())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(options)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m MealPlan) clone() MealPlan {
	out := make(MealPlan, len(m))
	for slot, options := range m {
		out[slot] = append([]string(nil), options...)
	}
	return out
}
