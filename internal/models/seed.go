// ABOUTME: Default 3-day split used on first launch.
// ABOUTME: Fresh UUIDs are generated each call; everything starts incomplete.
package models

// DefaultWorkouts returns the built-in Chest/Back/Legs split in day order.
func DefaultWorkouts() []Workout {
	return []Workout{
		NewWorkout("Chest - Triceps - Cardio", 1,
			NewExercise("Bench Press", 3, "8-10"),
			NewExercise("Incline Bench Press", 3, "10"),
			NewExercise("Triceps Pushdown", 3, "12"),
			NewExercise("Dumbbell Kickback", 2, "12"),
			NewExercise("Treadmill Walk/Jog", 1, "10-15 min"),
		),
		NewWorkout("Back - Biceps - Abs", 2,
			NewExercise("Lat Pulldown", 3, "10"),
			NewExercise("Seated Row", 3, "10"),
			NewExercise("Barbell Curl", 3, "12"),
			NewExercise("Dumbbell Hammer Curl", 2, "10"),
			NewExercise("Plank", 2, "1 min"),
			NewExercise("Russian Twist", 2, "20"),
		),
		NewWorkout("Legs - Shoulders - Cardio", 3,
			NewExercise("Squat", 3, "12"),
			NewExercise("Leg Press", 3, "10"),
			NewExercise("Dumbbell Shoulder Press", 3, "10"),
			NewExercise("Lateral Raise", 2, "12"),
			NewExercise("Elliptical / Walking", 1, "10-15 min"),
		),
	}
}
