package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DaysPerWeek is the length of every schedule in the workout tables.
const DaysPerWeek = 7

// ErrNoSchedule reports a goal/equipment pair that has no workout table.
var ErrNoSchedule = errors.New("no workout schedule for goal and equipment")

// UnknownKeyError is returned when decoding a table key that does not exist.
type UnknownKeyError struct {
	Kind string
	Key  string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Key)
}

// Day numbers a training day from 1 to 7. It encodes as "Day N".
type Day int

func (d Day) String() string { return "Day " + strconv.Itoa(int(d)) }

func (d Day) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Day) UnmarshalText(b []byte) error {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(string(b), "Day")))
	if err != nil || n < 1 || n > DaysPerWeek {
		return &UnknownKeyError{Kind: "day", Key: string(b)}
	}
	*d = Day(n)
	return nil
}

// WeeklySchedule maps each day to its ordered exercises.
type WeeklySchedule map[Day][]string

// WorkoutPlan is the full output of GenerateWorkoutPlan.
type WorkoutPlan struct {
	Warmup     []string       `json:"warmup"`
	Cooldown   []string       `json:"cooldown"`
	WeeklyPlan WeeklySchedule `json:"weekly_plan"`
}

// Warmup returns the fixed warm-up routine.
func Warmup() []string {
	return []string{
		"5 min light jogging / marching",
		"Arm circles – 20 reps",
		"Leg swings – 15/leg",
		"Neck rotations – 10 reps",
		"Hip rotations – 10 reps",
	}
}

// Cooldown returns the fixed static stretching routine.
func Cooldown() []string {
	return []string{
		"Hamstring stretch – 30 sec",
		"Shoulder stretch – 30 sec",
		"Cat-Cow – 10 reps",
		"Child pose – 1 min",
		"Deep breathing – 2 min",
	}
}

// LookupSchedule returns a copy of the weekly schedule for the pair, or
// ErrNoSchedule when the tables have no entry for the goal.
func LookupSchedule(goal Goal, equipment Equipment) (WeeklySchedule, error) {
	table := gymWorkouts
	if equipment == Home {
		table = homeWorkouts
	}

	days, ok := table[goal]
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoSchedule, goal, equipment)
	}

	out := make(WeeklySchedule, DaysPerWeek)
	for i, exercises := range days {
		out[Day(i+1)] = append([]string(nil), exercises...)
	}
	return out, nil
}

// GenerateWorkoutPlan attaches the warm-up and cool-down to the schedule for
// the pair. A pair without a schedule yields an empty weekly plan.
func GenerateWorkoutPlan(goal Goal, equipment Equipment) WorkoutPlan {
	schedule, err := LookupSchedule(goal, equipment)
	if err != nil {
		schedule = WeeklySchedule{}
	}
	return WorkoutPlan{
		Warmup:     Warmup(),
		Cooldown:   Cooldown(),
		WeeklyPlan: schedule,
	}
}

// HasSchedule reports whether the workout tables cover the pair.
func HasSchedule(goal Goal, equipment Equipment) bool {
	_, err := LookupSchedule(goal, equipment)
	return err == nil
}
