package plan

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"mealmind/internal/inventory"
	"mealmind/internal/profile"
)

//go:embed mealplan_prompt.md
var mealPlanPrompt string

// promptDateFormat renders dates the way they appear inside the prompt,
// e.g. "Tuesday, January 14, 2025".
const promptDateFormat = "Monday, January 2, 2006"

// PromptInput carries everything a single batch prompt needs.
type PromptInput struct {
	Profile             profile.Profile
	Inventory           []inventory.Item
	Preferences         string
	StartDay            int
	NumDays             int
	StartDate           time.Time
	PreviousPlanContext string
	RecentMeals         []PreviousMealName
}

type promptDate struct {
	Day   int
	Label string
}

type promptData struct {
	StartDay            int
	EndDay              int
	Dates               []promptDate
	HealthGoal          string
	ActivityLevel       string
	Calories            int
	ProteinG            float64
	CarbohydrateG       float64
	FatG                float64
	FiberG              float64
	Restrictions        string
	Allergies           string
	Cuisines            string
	Preferences         string
	InventoryJSON       string
	PreviousPlanContext string
	RecentMeals         string
}

// BuildBatchPrompt formats the generation instruction for one day-range
// batch. Day d of the plan falls on StartDate + (d-1) days.
func BuildBatchPrompt(in PromptInput) (string, error) {
	if in.NumDays < 1 {
		return "", fmt.Errorf("num_days must be at least 1")
	}
	start := in.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	dates := make([]promptDate, 0, in.NumDays)
	for d := in.StartDay; d < in.StartDay+in.NumDays; d++ {
		date := start.AddDate(0, 0, d-1)
		dates = append(dates, promptDate{Day: d, Label: date.Format(promptDateFormat)})
	}

	data := promptData{
		StartDay:            in.StartDay,
		EndDay:              in.StartDay + in.NumDays - 1,
		Dates:               dates,
		HealthGoal:          orNone(in.Profile.HealthGoal),
		ActivityLevel:       orNone(in.Profile.ActivityLevel),
		Calories:            in.Profile.Targets.Calories,
		ProteinG:            in.Profile.Targets.ProteinG,
		CarbohydrateG:       in.Profile.Targets.CarbohydrateG,
		FatG:                in.Profile.Targets.FatG,
		FiberG:              in.Profile.Targets.FiberG,
		Restrictions:        orNone(in.Profile.DietaryRestrictions),
		Allergies:           orNone(in.Profile.FoodAllergies),
		Cuisines:            orNone(in.Profile.PreferredCuisines),
		Preferences:         in.Preferences,
		InventoryJSON:       inventory.MarshalItems(in.Inventory),
		PreviousPlanContext: in.PreviousPlanContext,
		RecentMeals:         formatRecentMeals(in.RecentMeals),
	}

	tmpl, err := template.New("mealplan").Parse(mealPlanPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlannedMealsContext summarizes an earlier batch as "name (type)" lines
// for the next batch's prompt. An empty plan yields an empty string.
func PlannedMealsContext(doc *Document) string {
	if doc == nil || doc.MealPlan == nil {
		return ""
	}
	// Fixed meal order keeps prompts reproducible across runs.
	var b strings.Builder
	for _, day := range doc.MealPlan.Days {
		for _, mt := range mealOrder {
			meal, ok := day.Meals[mt]
			if !ok || meal.MealName == "" {
				continue
			}
			if b.Len() == 0 {
				b.WriteString("Meals planned so far:")
			}
			fmt.Fprintf(&b, "\n- %s (%s)", meal.MealName, mt)
		}
	}
	return b.String()
}

var mealOrder = []string{"breakfast", "lunch", "snacks", "dinner"}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// formatRecentMeals renders last week's meal names as "- name (type)"
// lines. An empty slice yields an empty string.
func formatRecentMeals(meals []PreviousMealName) string {
	if len(meals) == 0 {
		return ""
	}
	var b strings.Builder
	for _, m := range meals {
		if m.MealName == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s (%s)", m.MealName, m.MealType)
	}
	return b.String()
}
