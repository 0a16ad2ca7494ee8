package planner

// week is a fixed seven-day schedule; index 0 is Day 1.
type week [DaysPerWeek][]string

// Maintenance has no table in either environment.

var homeWorkouts = map[Goal]week{
	FatLoss: {
		{"Jumping jacks – 30 sec", "Squats – 15×3", "Push-ups – 10×3", "Mountain climbers – 30 sec × 3", "Burpees – 10×2"},
		{"Brisk walk / jog – 30 min", "Plank – 45 sec × 2", "High knees – 30 sec × 2"},
		{"Lunges – 12×3", "Tricep dips (chair) – 12×3", "Bicycle crunch – 20×3", "Skipping – 2 min × 2"},
		{"REST / Yoga 20 min"},
		{"Squat jumps – 12×3", "Incline push-ups – 12×3", "Side plank – 30 sec each"},
		{"Jog – 30 min", "Glute bridge – 15×3"},
		{"REST / Stretching 15 min"},
	},
	MuscleGain: {
		{"Push-ups – 12×4", "Pike push-ups – 10×3", "Tricep dip – 12×3", "Plank – 1 min"},
		{"Bodyweight squats – 15×4", "Reverse lunges – 12×3", "Calf raise – 20×3"},
		{"REST / Yoga"},
		{"Wide push-ups – 12×4", "Diamond push-ups – 10×3", "Superman hold – 30 sec × 2"},
		{"Bulgarian split squat – 10×3", "Glute bridge – 15×3", "Wall sit – 1 min"},
		{"Abs & Core routine – 20 min"},
		{"REST"},
	},
	Strength: {
		{"Slow push-ups – 8×5", "Slow squats – 8×5", "Wall handstand hold – 30 sec"},
		{"Walk / light run – 30 min"},
		{"Pistol squat progression – 8×3", "Decline push-ups – 8×3"},
		{"REST"},
		{"Decline push-ups – 10×3", "Single-leg glute bridge – 12×3"},
		{"Core strengthening routine – 20 min"},
		{"REST"},
	},
}

var gymWorkouts = map[Goal]week{
	FatLoss: {
		{"Treadmill – 20 min HIIT", "Leg press – 12×3", "Lat pull down – 12×3", "Plank – 1 min"},
		{"Cycling – 25 min", "Cable row – 12×3", "Leg curl – 12×3"},
		{"Treadmill walk – 30 min", "Crunch machine – 15×3"},
		{"REST"},
		{"Rowing machine – 10 min", "Chest press – 12×3", "Shoulder press – 12×3"},
		{"Elliptical – 25 min"},
		{"REST"},
	},
	MuscleGain: {
		{"Bench press – 8×4", "Incline dumbbell press – 10×3", "Tricep pushdown – 12×3"},
		{"Squats – 8×4", "Leg press – 12×3", "Calf raise – 15×3"},
		{"REST"},
		{"Lat pull-down – 10×4", "Barbell row – 10×3", "Bicep curls – 12×3"},
		{"Deadlift – 6×3", "Hip thrust – 12×3", "Leg curl – 12×3"},
		{"Shoulder press – 10×3", "Lateral raises – 12×3", "Plank – 1 min"},
		{"REST"},
	},
	Strength: {
		{"Heavy squats – 5×5", "Romanian deadlift – 6×4"},
		{"Bench press – 5×5", "Dips – 8×3"},
		{"Deadlift – 5×3", "Pull-ups – 6×3"},
		{"REST"},
		{"Overhead press – 5×5", "Farmer walk – 2 rounds"},
		{"Sled push / row – 10 min"},
		{"REST"},
	},
}
