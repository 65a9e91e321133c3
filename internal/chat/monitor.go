package chat

import (
	"fmt"

	"mealmind/internal/plan"
	"mealmind/internal/profile"
)

// HealthWarnings compares a day's totals against the user's targets and
// returns human-readable alerts. Targets that are zero (not computed yet)
// are skipped.
func HealthWarnings(total plan.Nutrition, t profile.Targets) []string {
	var warnings []string

	if t.Calories > 0 && total.Calories > float64(t.Calories) {
		warnings = append(warnings, fmt.Sprintf(
			"⚠️ Calories (%.0f kcal) exceed your daily target of %d kcal.",
			total.Calories, t.Calories))
	}
	if t.FatG > 0 && total.FatG > t.FatG {
		warnings = append(warnings, fmt.Sprintf(
			"⚠️ Fat (%.1fg) exceeds your daily target of %.1fg.",
			total.FatG, t.FatG))
	}
	if t.CarbohydrateG > 0 && total.CarbohydratesG > t.CarbohydrateG {
		warnings = append(warnings, fmt.Sprintf(
			"⚠️ Carbohydrates (%.1fg) exceed your daily target of %.1fg.",
			total.CarbohydratesG, t.CarbohydrateG))
	}
	if t.ProteinG > 0 && total.ProteinG < t.ProteinG/2 {
		warnings = append(warnings, fmt.Sprintf(
			"⚠️ Protein (%.1fg) is well below your daily target of %.1fg.",
			total.ProteinG, t.ProteinG))
	}
	return warnings
}
