package profile

import "math"

var activityMultipliers = map[string]float64{
	"Sedentary":         1.2,
	"Lightly active":    1.375,
	"Moderately active": 1.55,
	"Very active":       1.725,
	"Extremely active":  1.9,
}

// CalculateTargets derives BMI and daily macro targets from body metrics
// using the Harris-Benedict estimate with an activity multiplier and a
// fixed calorie adjustment for weight goals.
func CalculateTargets(age int, gender string, weightKG, heightCM float64, activity, goal string) (bmi float64, t Targets) {
	heightM := heightCM / 100
	bmi = round1(weightKG / (heightM * heightM))

	var bmr float64
	if gender == "Male" {
		bmr = 88.362 + 13.397*weightKG + 4.799*heightCM - 5.677*float64(age)
	} else {
		bmr = 447.593 + 9.247*weightKG + 3.098*heightCM - 4.330*float64(age)
	}

	multiplier, ok := activityMultipliers[activity]
	if !ok {
		multiplier = 1.2
	}
	calories := int(bmr * multiplier)

	switch goal {
	case "Weight Loss":
		calories -= 500
	case "Weight Gain", "Muscle Gain":
		calories += 500
	}

	protein := round1(weightKG * 1.6)
	fat := round1(float64(calories) * 0.25 / 9)
	carbs := round1((float64(calories) - protein*4 - fat*9) / 4)

	t = Targets{
		Calories:      calories,
		ProteinG:      protein,
		CarbohydrateG: carbs,
		FatG:          fat,
		FiberG:        30,
	}
	return bmi, t
}

// BMICategory labels a BMI value using the standard WHO bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return "Unknown"
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal Weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
