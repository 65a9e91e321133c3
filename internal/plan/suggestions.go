package plan

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"
	"time"

	"mealmind/internal/agenttext"
	"mealmind/internal/profile"
	"mealmind/internal/shared"
)

//go:embed suggestions_prompt.md
var suggestionsPrompt string

// Suggestion is one proposed inventory purchase for next week.
type Suggestion struct {
	Item              string  `json:"item"`
	Reason            string  `json:"reason"`
	Category          string  `json:"category"`
	SuggestedQuantity float64 `json:"suggested_quantity"`
	Unit              string  `json:"unit"`
}

type suggestionsPromptData struct {
	HealthGoal    string
	ActivityLevel string
	Restrictions  string
	Allergies     string
	PlanSummary   string
}

// GenerateSuggestions proposes items to buy for the following week.
// Best-effort: failures return an empty list, never an error.
func (g *Generator) GenerateSuggestions(ctx context.Context, p profile.Profile, planSummary string) ([]Suggestion, shared.AgentMeta) {
	prompt, err := buildSuggestionsPrompt(suggestionsPromptData{
		HealthGoal:    orGeneral(p.HealthGoal),
		ActivityLevel: orNone(p.ActivityLevel),
		Restrictions:  orNone(p.DietaryRestrictions),
		Allergies:     orNone(p.FoodAllergies),
		PlanSummary:   planSummary,
	})
	if err != nil {
		return nil, shared.AgentMeta{}
	}

	agentStart := time.Now()
	resp, err := g.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, shared.AgentMeta{}
	}
	meta := shared.AgentMeta{
		AgentName: "SuggestionPlanner",
		Usage:     resp.Usage,
		Latency:   time.Since(agentStart),
	}

	parsed, ok := agenttext.ExtractJSON(agenttext.Flatten(resp.Content))
	if !ok {
		return nil, meta
	}

	// The agent sometimes wraps the list in {"future_suggestions": [...]}.
	if obj, isObj := parsed.(map[string]any); isObj {
		if inner, ok := obj["future_suggestions"]; ok {
			parsed = inner
		}
	}

	raw, err := json.Marshal(parsed)
	if err != nil {
		return nil, meta
	}
	var out []Suggestion
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, meta
	}
	return out, meta
}

func buildSuggestionsPrompt(data suggestionsPromptData) (string, error) {
	tmpl, err := template.New("suggestions").Parse(suggestionsPrompt)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// hasFutureSuggestions reports whether the week summary already carries a
// non-empty future_suggestions list.
func hasFutureSuggestions(doc *Document) bool {
	if doc == nil || doc.MealPlan == nil || doc.MealPlan.WeekSummary == nil {
		return false
	}
	v, ok := doc.MealPlan.WeekSummary["future_suggestions"]
	if !ok {
		return false
	}
	list, ok := v.([]any)
	return ok && len(list) > 0
}
