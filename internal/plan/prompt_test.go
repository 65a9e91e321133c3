package plan

import (
	"strings"
	"testing"
	"time"

	"mealmind/internal/inventory"
	"mealmind/internal/profile"
)

func testProfile() profile.Profile {
	return profile.Profile{
		UserID:              "u1",
		HealthGoal:          "Weight Loss",
		ActivityLevel:       "Moderately active",
		DietaryRestrictions: "vegetarian",
		FoodAllergies:       "peanuts",
		Targets: profile.Targets{
			Calories: 2000, ProteinG: 120, CarbohydrateG: 220, FatG: 60, FiberG: 30,
		},
	}
}

func TestBuildBatchPromptEmbedsLiteralDates(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	prompt, err := BuildBatchPrompt(PromptInput{
		Profile:   testProfile(),
		StartDay:  5,
		NumDays:   3,
		StartDate: start,
	})
	if err != nil {
		t.Fatalf("BuildBatchPrompt: %v", err)
	}

	// Day 5 falls on start + 4 days.
	if !strings.Contains(prompt, "Tuesday, January 14, 2025") {
		t.Errorf("prompt missing day-5 date:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Thursday, January 16, 2025") {
		t.Error("prompt missing day-7 date")
	}
	if strings.Contains(prompt, "January 9, 2025") {
		t.Error("prompt contains a date before the plan start")
	}
}

func TestBuildBatchPromptEmbedsTargetsAndAllergies(t *testing.T) {
	prompt, err := BuildBatchPrompt(PromptInput{
		Profile:   testProfile(),
		StartDay:  1,
		NumDays:   4,
		StartDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Inventory: []inventory.Item{{ItemName: "Quinoa", Quantity: 1, Unit: "bag"}},
	})
	if err != nil {
		t.Fatalf("BuildBatchPrompt: %v", err)
	}

	for _, want := range []string{"2000 kcal", "120", "peanuts", "vegetarian", "Quinoa"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildBatchPromptIncludesPreviousContext(t *testing.T) {
	prompt, err := BuildBatchPrompt(PromptInput{
		Profile:             testProfile(),
		StartDay:            5,
		NumDays:             3,
		StartDate:           time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		PreviousPlanContext: "Meals planned so far:\n- Tofu Scramble (breakfast)",
	})
	if err != nil {
		t.Fatalf("BuildBatchPrompt: %v", err)
	}
	if !strings.Contains(prompt, "Tofu Scramble") {
		t.Error("prompt missing previous batch context")
	}
}

func TestPlannedMealsContext(t *testing.T) {
	doc := testDocument([]Day{
		{
			Day: 1,
			Meals: map[string]Meal{
				"breakfast": {MealName: "Oatmeal"},
				"dinner":    {MealName: "Curry"},
			},
		},
	}, ShoppingList{})

	got := PlannedMealsContext(doc)
	want := "Meals planned so far:\n- Oatmeal (breakfast)\n- Curry (dinner)"
	if got != want {
		t.Errorf("PlannedMealsContext() = %q, want %q", got, want)
	}

	if PlannedMealsContext(nil) != "" {
		t.Error("nil document should yield empty context")
	}
}
