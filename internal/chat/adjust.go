package chat

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"mealmind/internal/agenttext"
	"mealmind/internal/plan"
	"mealmind/internal/shared"
)

//go:embed adjust_prompt.md
var adjustPrompt string

type adjustPromptData struct {
	MealType    string
	Date        string
	CurrentMeal string
	Instruction string
}

// adjustedMeal is the shape the model returns for a meal update.
type adjustedMeal struct {
	Intent                    string          `json:"intent"`
	MealName                  string          `json:"meal_name"`
	IngredientsWithQuantities json.RawMessage `json:"ingredients_with_quantities"`
	Nutrition                 plan.Nutrition  `json:"nutrition"`
	Recipe                    json.RawMessage `json:"recipe"`
}

// adjustMeal rewrites one stored meal from the user's instruction, then
// recomputes the day totals and reports them with any health warnings.
func (r *Router) adjustMeal(ctx context.Context, req Request, step Step) string {
	date, ok := resolveDate(step.Date, req.Now)
	if !ok {
		date, ok, _ = parseMealQuery(instructionOrMessage(step, req), req.Now)
		if !ok {
			date = time.Date(req.Now.Year(), req.Now.Month(), req.Now.Day(), 0, 0, 0, 0, req.Now.Location())
		}
	}
	mealType := step.MealType
	if mealType == "" {
		_, _, mealType = parseMealQuery(instructionOrMessage(step, req), req.Now)
	}
	if mealType == "" {
		mealType = "lunch"
	}

	day, err := r.deps.Plans.DayByDate(ctx, req.UserID, date)
	if err != nil {
		if errors.Is(err, plan.ErrNoPlan) {
			return "❌ No meal plan found for this date."
		}
		r.deps.Logger.Warn("day lookup failed", zap.Error(err))
		return "❌ I couldn't look up your plan right now."
	}

	stored, err := r.deps.Plans.MealByDate(ctx, req.UserID, date, mealType)
	if err != nil {
		if errors.Is(err, plan.ErrNoPlan) {
			return fmt.Sprintf("❌ No %s found for this date.", mealType)
		}
		r.deps.Logger.Warn("meal lookup failed", zap.Error(err))
		return "❌ I couldn't look up your plan right now."
	}

	currentMeal, err := json.MarshalIndent(stored.Meal, "", "  ")
	if err != nil {
		currentMeal = []byte("No existing meal data.")
	}

	prompt, err := buildPrompt("adjust", adjustPrompt, adjustPromptData{
		MealType:    mealType,
		Date:        date.Format("2006-01-02"),
		CurrentMeal: string(currentMeal),
		Instruction: instructionOrMessage(step, req),
	})
	if err != nil {
		return "❌ Error processing request."
	}

	start := time.Now()
	resp, err := r.deps.TextGen.GenerateContent(ctx, prompt)
	if err != nil {
		r.deps.Logger.Warn("meal adjustment agent failed", zap.Error(err))
		return "❌ Error processing request. Please try again."
	}
	r.recordMeta(shared.AgentMeta{
		AgentName: "MealAdjustment",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	})

	parsed, ok := agenttext.ExtractJSON(resp.Content)
	if !ok {
		return "❌ Error processing request. Please try again."
	}
	raw, err := json.Marshal(parsed)
	if err != nil {
		return "❌ Error processing request. Please try again."
	}
	var adjusted adjustedMeal
	if err := json.Unmarshal(raw, &adjusted); err != nil || adjusted.MealName == "" {
		return "❌ Error processing request. Please try again."
	}

	updated := stored.Meal
	updated.MealName = adjusted.MealName
	updated.IngredientsWithQuantities = adjusted.IngredientsWithQuantities
	updated.Nutrition = adjusted.Nutrition
	updated.Recipe = adjusted.Recipe

	if err := r.deps.Plans.UpdateMeal(ctx, stored.DetailID, updated); err != nil {
		r.deps.Logger.Error("failed to update meal", zap.Error(err))
		return "❌ Failed to update meal in database."
	}

	total, err := r.recomputeDayTotals(ctx, day.MealID)
	if err != nil {
		r.deps.Logger.Error("failed to recompute day totals", zap.Error(err))
		return "❌ Failed to update meal in database."
	}

	var warnings []string
	if p, err := r.deps.Users.Get(ctx, req.UserID); err == nil {
		warnings = HealthWarnings(total, p.Targets)
	}

	action := "updated"
	if adjusted.Intent == "append" {
		action = "added to"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Successfully %s %s. New item: %s.\n\n", action, mealType, adjusted.MealName)
	sb.WriteString("**New Daily Total:**\n")
	fmt.Fprintf(&sb, "- Calories: %.0f kcal\n", total.Calories)
	fmt.Fprintf(&sb, "- Protein: %.1fg\n", total.ProteinG)
	fmt.Fprintf(&sb, "- Carbs: %.1fg\n", total.CarbohydratesG)
	fmt.Fprintf(&sb, "- Fat: %.1fg\n", total.FatG)
	fmt.Fprintf(&sb, "- Fiber: %.1fg\n", total.FiberG)
	if len(warnings) > 0 {
		sb.WriteString("\n**Health Alerts:**\n")
		for _, w := range warnings {
			sb.WriteString(w + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// recomputeDayTotals sums nutrition over every meal of the day and stores
// the rounded result.
func (r *Router) recomputeDayTotals(ctx context.Context, mealID string) (plan.Nutrition, error) {
	meals, err := r.deps.Plans.MealsForDay(ctx, mealID)
	if err != nil {
		return plan.Nutrition{}, err
	}

	var total plan.Nutrition
	for _, m := range meals {
		total.Calories += m.Meal.Nutrition.Calories
		total.ProteinG += m.Meal.Nutrition.ProteinG
		total.CarbohydratesG += m.Meal.Nutrition.CarbohydratesG
		total.FatG += m.Meal.Nutrition.FatG
		total.FiberG += m.Meal.Nutrition.FiberG
	}
	total.Calories = round1(total.Calories)
	total.ProteinG = round1(total.ProteinG)
	total.CarbohydratesG = round1(total.CarbohydratesG)
	total.FatG = round1(total.FatG)
	total.FiberG = round1(total.FiberG)

	if err := r.deps.Plans.UpdateDayNutrition(ctx, mealID, total); err != nil {
		return plan.Nutrition{}, err
	}
	return total, nil
}

func instructionOrMessage(step Step, req Request) string {
	if step.Instruction != "" {
		return step.Instruction
	}
	return req.Message
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
