package server

import (
	"errors"
	"net/http"

	"FitPlanner/internal/planner"
	"FitPlanner/internal/utility"

	"github.com/labstack/echo/v4"
)

// ProfileRequest is the plan form as submitted by the client. Choice fields
// are free text and go through the lenient planner parsers.
type ProfileRequest struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activity_level"`
	DietType      string  `json:"diet_type"`
	Equipment     string  `json:"equipment"`
}

type WorkoutRequest struct {
	Goal      string `json:"goal"`
	Equipment string `json:"equipment"`
}

type FullPlanResponse struct {
	Diet    *planner.DietPlan   `json:"diet"`
	Workout planner.WorkoutPlan `json:"workout"`
}

type PlanOptionsResponse struct {
	Genders        []string `json:"genders"`
	Goals          []string `json:"goals"`
	ActivityLevels []string `json:"activity_levels"`
	DietTypes      []string `json:"diet_types"`
	Equipment      []string `json:"equipment"`
	MealSlots      []string `json:"meal_slots"`
}

// toProfile converts the form into a UserProfile. An unrecognised activity
// level is not an error; the default tier is used and a warning logged.
func (r ProfileRequest) toProfile(c echo.Context) planner.UserProfile {
	level, ok := planner.ParseActivityLevel(r.ActivityLevel)
	if !ok {
		utility.GetLogger(c).Warn().
			Str("activity_level", r.ActivityLevel).
			Str("fallback", level.Label()).
			Msg("Unknown activity level, using default")
	}

	return planner.UserProfile{
		Age:           r.Age,
		Gender:        planner.ParseGender(r.Gender),
		HeightCm:      r.HeightCm,
		WeightKg:      r.WeightKg,
		Goal:          planner.ParseGoal(r.Goal),
		ActivityLevel: level,
		DietType:      planner.ParseDietType(r.DietType),
		Equipment:     planner.ParseEquipment(r.Equipment),
	}
}

func (s *Server) planOptionsHandler(c echo.Context) error {
	goals := make([]string, 0, len(planner.Goals()))
	for _, g := range planner.Goals() {
		goals = append(goals, g.String())
	}

	slots := make([]string, 0, len(planner.MealSlots()))
	for _, m := range planner.MealSlots() {
		slots = append(slots, m.String())
	}

	return c.JSON(http.StatusOK, PlanOptionsResponse{
		Genders:        []string{planner.Male.String(), planner.Female.String()},
		Goals:          goals,
		ActivityLevels: planner.ActivityLevels(),
		DietTypes:      []string{planner.Veg.String(), planner.NonVeg.String()},
		Equipment:      []string{planner.Home.String(), planner.Gym.String()},
		MealSlots:      slots,
	})
}

func (s *Server) dietPlanHandler(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
	}

	plan, err := planner.GenerateDietPlan(req.toProfile(c))
	if err != nil {
		return dietError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

func (s *Server) workoutPlanHandler(c echo.Context) error {
	var req WorkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
	}

	goal := planner.ParseGoal(req.Goal)
	equipment := planner.ParseEquipment(req.Equipment)
	logWorkoutGap(c, goal, equipment)

	return c.JSON(http.StatusOK, planner.GenerateWorkoutPlan(goal, equipment))
}

// fullPlanHandler generates the diet and the workout for one profile.
func (s *Server) fullPlanHandler(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
	}

	profile := req.toProfile(c)
	diet, err := planner.GenerateDietPlan(profile)
	if err != nil {
		return dietError(c, err)
	}
	logWorkoutGap(c, profile.Goal, profile.Equipment)

	return c.JSON(http.StatusOK, FullPlanResponse{
		Diet:    diet,
		Workout: planner.GenerateWorkoutPlan(profile.Goal, profile.Equipment),
	})
}

func dietError(c echo.Context, err error) error {
	if errors.Is(err, planner.ErrInvalidMeasurements) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": planner.InvalidMeasurementsMessage})
	}
	utility.GetLogger(c).Error().Err(err).Msg("Failed to generate diet plan")
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate diet plan"})
}

func logWorkoutGap(c echo.Context, goal planner.Goal, equipment planner.Equipment) {
	if !planner.HasSchedule(goal, equipment) {
		utility.GetLogger(c).Debug().
			Str("goal", goal.String()).
			Str("equipment", equipment.String()).
			Msg("No weekly schedule for goal")
	}
}
