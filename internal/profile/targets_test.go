package profile

import (
	"math"
	"testing"
)

func TestCalculateTargetsMale(t *testing.T) {
	bmi, targets := CalculateTargets(30, "Male", 80, 180, "Moderately active", "Maintenance")

	if math.Abs(bmi-24.7) > 0.05 {
		t.Errorf("bmi = %v, want 24.7", bmi)
	}

	// BMR = 88.362 + 13.397*80 + 4.799*180 - 5.677*30 = 1853.632
	// calories = int(1853.632 * 1.55) = 2873
	if targets.Calories != 2873 {
		t.Errorf("calories = %d, want 2873", targets.Calories)
	}
	if targets.ProteinG != 128.0 {
		t.Errorf("protein = %v, want 128.0", targets.ProteinG)
	}
	if targets.FiberG != 30 {
		t.Errorf("fiber = %v, want 30", targets.FiberG)
	}
}

func TestCalculateTargetsWeightLoss(t *testing.T) {
	_, maintain := CalculateTargets(30, "Female", 65, 165, "Sedentary", "Maintenance")
	_, loss := CalculateTargets(30, "Female", 65, 165, "Sedentary", "Weight Loss")
	if loss.Calories != maintain.Calories-500 {
		t.Errorf("weight loss calories = %d, want %d", loss.Calories, maintain.Calories-500)
	}

	_, gain := CalculateTargets(30, "Female", 65, 165, "Sedentary", "Muscle Gain")
	if gain.Calories != maintain.Calories+500 {
		t.Errorf("muscle gain calories = %d, want %d", gain.Calories, maintain.Calories+500)
	}
}

func TestCalculateTargetsUnknownActivityDefaultsToSedentary(t *testing.T) {
	_, sedentary := CalculateTargets(40, "Male", 90, 175, "Sedentary", "Maintenance")
	_, unknown := CalculateTargets(40, "Male", 90, 175, "couch potato", "Maintenance")
	if sedentary.Calories != unknown.Calories {
		t.Errorf("unknown activity calories = %d, want %d", unknown.Calories, sedentary.Calories)
	}
}

func TestBMICategory(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{17.0, "Underweight"},
		{18.5, "Normal Weight"},
		{24.9, "Normal Weight"},
		{25.0, "Overweight"},
		{31.2, "Obese"},
		{0, "Unknown"},
	}
	for _, c := range cases {
		if got := BMICategory(c.bmi); got != c.want {
			t.Errorf("BMICategory(%v) = %q, want %q", c.bmi, got, c.want)
		}
	}
}
