package chat

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mealmind/internal/inventory"
	"mealmind/internal/plan"
	"mealmind/internal/shared"
)

//go:embed general_prompt.md
var generalPrompt string

const (
	maxInventoryChars   = 500
	maxPlanSummaryChars = 300
	maxHistoryTurns     = 5
)

type generalPromptData struct {
	Today               string
	Username            string
	HealthGoal          string
	DietaryRestrictions string
	FoodAllergies       string
	Preferences         string
	Inventory           string
	PlanSummary         string
	History             string
	Message             string
}

// generalChat answers everything the specialized handlers don't, with the
// user's profile, learned preferences, pantry, and plan as context.
func (r *Router) generalChat(ctx context.Context, req Request, step Step) string {
	data := generalPromptData{
		Today:               req.Now.Format("Monday, January 2, 2006"),
		Username:            "User",
		HealthGoal:          "General Health",
		DietaryRestrictions: "None",
		FoodAllergies:       "None",
		Preferences:         "None recorded yet.",
		Inventory:           "Unknown",
		PlanSummary:         "No active plan.",
		History:             formatHistory(req.History),
		Message:             instructionOrMessage(step, req),
	}

	if p, err := r.deps.Users.Get(ctx, req.UserID); err == nil {
		if p.Username != "" {
			data.Username = p.Username
		}
		if p.HealthGoal != "" {
			data.HealthGoal = p.HealthGoal
		}
		if p.DietaryRestrictions != "" {
			data.DietaryRestrictions = p.DietaryRestrictions
		}
		if p.FoodAllergies != "" {
			data.FoodAllergies = p.FoodAllergies
		}
	}
	if prefs, err := r.deps.Prefs.Get(ctx, req.UserID); err == nil && !prefs.IsEmpty() {
		data.Preferences = prefs.FormatForPrompt()
	}
	if items, err := r.deps.Inventory.ListByUser(ctx, req.UserID); err == nil && len(items) > 0 {
		data.Inventory = truncate(formatInventory(items), maxInventoryChars)
	}
	if active, err := r.deps.Plans.LatestActivePlan(ctx, req.UserID); err == nil {
		data.PlanSummary = truncate(formatPlanSummary(active), maxPlanSummaryChars)
	} else if !errors.Is(err, plan.ErrNoPlan) {
		r.deps.Logger.Warn("active plan lookup failed", zap.Error(err))
	}

	prompt, err := buildPrompt("general", generalPrompt, data)
	if err != nil {
		return "I'm having trouble right now. Please try again."
	}

	start := time.Now()
	resp, err := r.deps.TextGen.GenerateContent(ctx, prompt)
	if err != nil {
		r.deps.Logger.Warn("general chat failed", zap.Error(err))
		return "I'm currently in offline mode."
	}
	r.recordMeta(shared.AgentMeta{
		AgentName: "GeneralChat",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	})
	return resp.Content
}

func formatHistory(history []Turn) string {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	var sb strings.Builder
	for _, t := range history {
		fmt.Fprintf(&sb, "%s: %s\n", t.Role, t.Content)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatInventory(items []inventory.Item) string {
	var sb strings.Builder
	for _, it := range items {
		fmt.Fprintf(&sb, "- %s (%.1f %s)\n", it.ItemName, it.Quantity, it.Unit)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatPlanSummary(p plan.ActivePlan) string {
	var sb strings.Builder
	name := p.PlanName
	if name == "" {
		name = "Current plan"
	}
	fmt.Fprintf(&sb, "%s (%s to %s, by %s)",
		name, p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"), p.GeneratedBy)
	if theme, ok := p.WeekSummary["theme"].(string); ok && theme != "" {
		sb.WriteString(". Theme: " + theme)
	}
	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
