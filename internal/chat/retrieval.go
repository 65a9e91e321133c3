package chat

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mealmind/internal/agenttext"
	"mealmind/internal/plan"
	"mealmind/internal/shared"
)

//go:embed retrieval_prompt.md
var retrievalPrompt string

type retrievalPromptData struct {
	Message string
	Year    int
}

// retrieveMeals looks up what is planned for a date, preferring the
// planner's parameters, then rule-based parsing, then an LLM extraction
// pass.
func (r *Router) retrieveMeals(ctx context.Context, req Request, step Step) string {
	text := instructionOrMessage(step, req)

	date, hasDate := resolveDate(step.Date, req.Now)
	mealType := step.MealType
	if !hasDate || mealType == "" {
		d, ok, mt := parseMealQuery(text, req.Now)
		if !hasDate && ok {
			date, hasDate = d, true
		}
		if mealType == "" {
			mealType = mt
		}
	}
	if !hasDate {
		date, mealType = r.extractDateWithModel(ctx, text, req.Now, mealType)
		hasDate = !date.IsZero()
	}
	if !hasDate {
		date = time.Date(req.Now.Year(), req.Now.Month(), req.Now.Day(), 0, 0, 0, 0, req.Now.Location())
	}

	day, err := r.deps.Plans.DayByDate(ctx, req.UserID, date)
	if err != nil {
		if errors.Is(err, plan.ErrNoPlan) {
			return "No meals found matching your criteria. You may not have an active meal plan for this date."
		}
		r.deps.Logger.Warn("day lookup failed", zap.Error(err))
		return "I couldn't look up your plan right now."
	}

	meals, err := r.deps.Plans.MealsForDay(ctx, day.MealID)
	if err != nil {
		r.deps.Logger.Warn("meal listing failed", zap.Error(err))
		return "I couldn't look up your plan right now."
	}
	if mealType != "" {
		var filtered []plan.StoredMeal
		for _, m := range meals {
			if m.MealType == mealType {
				filtered = append(filtered, m)
			}
		}
		meals = filtered
	}
	if len(meals) == 0 {
		return "No meals found matching your criteria. You may not have an active meal plan for this date."
	}

	return formatRetrievedMeals(day, meals)
}

// extractDateWithModel is the LLM fallback when rule-based parsing finds
// no usable date.
func (r *Router) extractDateWithModel(ctx context.Context, text string, now time.Time, mealType string) (time.Time, string) {
	prompt, err := buildPrompt("retrieval", retrievalPrompt, retrievalPromptData{
		Message: text,
		Year:    now.Year(),
	})
	if err != nil {
		return time.Time{}, mealType
	}

	start := time.Now()
	resp, err := r.deps.TextGen.GenerateContent(ctx, prompt)
	if err != nil {
		r.deps.Logger.Warn("date extraction failed", zap.Error(err))
		return time.Time{}, mealType
	}
	r.recordMeta(shared.AgentMeta{
		AgentName: "DateExtractor",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	})

	parsed, ok := agenttext.ExtractJSON(resp.Content)
	if !ok {
		return time.Time{}, mealType
	}
	raw, err := json.Marshal(parsed)
	if err != nil {
		return time.Time{}, mealType
	}
	var out struct {
		Date     string `json:"date"`
		MealType string `json:"meal_type"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return time.Time{}, mealType
	}

	var date time.Time
	if d, err := time.Parse("2006-01-02", out.Date); err == nil {
		date = d
	}
	if mealType == "" {
		mealType = out.MealType
	}
	return date, mealType
}

func formatRetrievedMeals(day plan.StoredDay, meals []plan.StoredMeal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's what's planned for %s, %s:\n\n",
		day.DayName, day.MealDate.Format("January 2, 2006"))

	for _, m := range meals {
		fmt.Fprintf(&sb, "**%s** (%s)\n", m.Meal.MealName, titleCase(m.MealType))
		fmt.Fprintf(&sb, "- Calories: %.0f kcal\n", m.Meal.Nutrition.Calories)
		fmt.Fprintf(&sb, "- Protein: %.1fg\n", m.Meal.Nutrition.ProteinG)
		if ings := ingredientNames(m.Meal.IngredientsWithQuantities); len(ings) > 0 {
			sb.WriteString("- Ingredients: " + strings.Join(ings, ", ") + "\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ingredientNames pulls up to five ingredient names out of the stored
// JSON list.
func ingredientNames(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []struct {
		Ingredient string `json:"ingredient"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var names []string
	for _, it := range items {
		if it.Ingredient == "" {
			continue
		}
		names = append(names, it.Ingredient)
		if len(names) == 5 {
			break
		}
	}
	return names
}
