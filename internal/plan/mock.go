package plan

import (
	"encoding/json"
	"fmt"
	"time"

	"mealmind/internal/profile"
)

type mealTemplate struct {
	Name          string
	Prep          int
	Cook          int
	CalorieShare  float64
	ProteinShare  float64
}

var mockMealTemplates = map[string][]mealTemplate{
	"breakfast": {
		{"Protein Oatmeal Bowl", 5, 10, 0.25, 0.25},
		{"Spinach & Feta Omelet", 10, 10, 0.25, 0.25},
		{"Greek Yogurt Parfait", 5, 0, 0.25, 0.25},
		{"Avocado Toast with Eggs", 5, 5, 0.25, 0.25},
	},
	"lunch": {
		{"Grilled Chicken Salad", 15, 15, 0.35, 0.35},
		{"Turkey Wrap", 10, 0, 0.35, 0.35},
		{"Quinoa & Black Bean Bowl", 15, 20, 0.35, 0.35},
		{"Tuna Salad Sandwich", 10, 0, 0.35, 0.35},
	},
	"snacks": {
		{"Greek Yogurt with Berries", 2, 0, 0.10, 0.10},
		{"Apple Slices with Almond Butter", 2, 0, 0.10, 0.10},
		{"Protein Shake", 2, 0, 0.10, 0.10},
		{"Handful of Almonds", 0, 0, 0.10, 0.10},
	},
	"dinner": {
		{"Baked Salmon with Vegetables", 15, 25, 0.30, 0.30},
		{"Lean Beef Stir-Fry", 20, 15, 0.30, 0.30},
		{"Chicken Breast with Sweet Potato", 10, 30, 0.30, 0.30},
		{"Vegetable Curry with Tofu", 20, 20, 0.30, 0.30},
	},
}

// MockGenerate builds a template-based fallback plan without any external
// call. Meal choice rotates with the day index so the output is
// deterministic for a given input.
func MockGenerate(p profile.Profile, startDate time.Time, numDays int) *Document {
	if numDays < 1 {
		numDays = 7
	}

	days := make([]Day, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := startDate.AddDate(0, 0, i)
		days = append(days, Day{
			Day:     i + 1,
			DayName: date.Weekday().String(),
			MealDate: date.Format("2006-01-02"),
			TotalNutrition: Nutrition{
				Calories:       float64(p.Targets.Calories),
				ProteinG:       p.Targets.ProteinG,
				CarbohydratesG: p.Targets.CarbohydrateG,
				FatG:           p.Targets.FatG,
				FiberG:         p.Targets.FiberG,
			},
			Meals: map[string]Meal{
				"breakfast": mockMeal("breakfast", i, p),
				"lunch":     mockMeal("lunch", i, p),
				"snacks":    mockMeal("snacks", i, p),
				"dinner":    mockMeal("dinner", i, p),
			},
		})
	}

	doc := &Document{
		UserSummary: mustJSON(map[string]any{
			"user_id":     p.UserID,
			"health_goal": orGeneral(p.HealthGoal),
			"daily_targets": map[string]any{
				"calories":        p.Targets.Calories,
				"protein_g":       p.Targets.ProteinG,
				"carbohydrates_g": p.Targets.CarbohydrateG,
				"fat_g":           p.Targets.FatG,
				"fiber_g":         p.Targets.FiberG,
			},
		}),
		MealPlan: &Week{
			WeekSummary: map[string]any{
				"average_daily_calories": p.Targets.Calories,
				"average_daily_protein":  p.Targets.ProteinG,
				"average_daily_carbs":    p.Targets.CarbohydrateG,
				"average_daily_fat":      p.Targets.FatG,
				"average_daily_fiber":    p.Targets.FiberG,
			},
			Days: days,
		},
		Recommendations: map[string]json.RawMessage{
			"hydration": mustJSON(fmt.Sprintf("Drink %dml of water daily", int(p.WeightKG*35))),
		},
		Metadata: mustJSON(map[string]any{
			"generated_at":  time.Now().UTC().Format(time.RFC3339),
			"version":       "1.0",
			"agent_version": "MOCK_v1",
		}),
	}

	_ = doc.SetShoppingList(ShoppingList{
		Proteins: []ShoppingItem{
			{Item: "Salmon", TotalQuantityNeeded: 540, QuantityInInventory: 0, QuantityToPurchase: 540, Unit: "g"},
		},
		Grains: []ShoppingItem{
			{Item: "Quinoa", TotalQuantityNeeded: 300, QuantityInInventory: 100, QuantityToPurchase: 200, Unit: "g"},
		},
		TotalItemsFromInventory: 15,
		TotalItemsToPurchase:    25,
	})
	return doc
}

func mockMeal(mealType string, dayIndex int, p profile.Profile) Meal {
	options := mockMealTemplates[mealType]
	tmpl := options[dayIndex%len(options)]

	calories := float64(p.Targets.Calories) * tmpl.CalorieShare
	return Meal{
		MealName:        tmpl.Name,
		PreparationTime: tmpl.Prep,
		CookingTime:     tmpl.Cook,
		Nutrition: Nutrition{
			Calories:       calories,
			ProteinG:       p.Targets.ProteinG * tmpl.ProteinShare,
			CarbohydratesG: calories * 0.5 / 4,
			FatG:           calories * 0.3 / 9,
			FiberG:         8,
		},
		ServingSize: "1 serving",
		Servings:    1,
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func orGeneral(goal string) string {
	if goal == "" {
		return "General Health"
	}
	return goal
}
