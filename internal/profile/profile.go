// Package profile holds user profiles and their daily nutrition targets.
package profile

import "time"

// Profile is a user's nutrition profile as used by the planner and chat.
type Profile struct {
	UserID              string
	Username            string
	Email               string
	Age                 int
	Gender              string
	HeightCM            float64
	WeightKG            float64
	BMI                 float64
	ActivityLevel       string
	HealthGoal          string
	DietaryRestrictions string
	FoodAllergies       string
	PreferredCuisines   string
	Targets             Targets
	ProfileCompleted    bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Targets are the daily macro targets derived from the profile.
type Targets struct {
	Calories      int
	ProteinG      float64
	CarbohydrateG float64
	FatG          float64
	FiberG        float64
}
