// Package chat routes user messages to specialized handlers: meal
// adjustment, plan retrieval, calorie estimation, and general chat.
package chat

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"mealmind/internal/agenttext"
	"mealmind/internal/feedback"
	"mealmind/internal/inventory"
	"mealmind/internal/llm"
	"mealmind/internal/plan"
	"mealmind/internal/profile"
	"mealmind/internal/shared"
)

//go:embed planner_prompt.md
var plannerPrompt string

// StepType identifies one routed unit of work.
type StepType string

// The four step types the planner can emit.
const (
	StepMealAdjustment    StepType = "meal_adjustment"
	StepMealRetrieval     StepType = "meal_retrieval"
	StepCalorieEstimation StepType = "calorie_estimation"
	StepGeneralChat       StepType = "general_chat"
)

// Step is one planned unit of work with its extracted parameters.
type Step struct {
	Type        StepType `json:"type"`
	Date        string   `json:"date,omitempty"`
	MealType    string   `json:"meal_type,omitempty"`
	Instruction string   `json:"instruction,omitempty"`
}

// Turn is one prior message in the conversation.
type Turn struct {
	Role    string
	Content string
}

// Request is one incoming chat message with its context.
type Request struct {
	UserID  string
	Message string
	History []Turn
	Now     time.Time
}

// PlanStore serves and mutates stored plan rows.
type PlanStore interface {
	DayByDate(ctx context.Context, userID string, date time.Time) (plan.StoredDay, error)
	MealByDate(ctx context.Context, userID string, date time.Time, mealType string) (plan.StoredMeal, error)
	MealsForDay(ctx context.Context, mealID string) ([]plan.StoredMeal, error)
	UpdateMeal(ctx context.Context, detailID string, m plan.Meal) error
	UpdateDayNutrition(ctx context.Context, mealID string, n plan.Nutrition) error
	LatestActivePlan(ctx context.Context, userID string) (plan.ActivePlan, error)
}

// UserStore serves user profiles.
type UserStore interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
}

// InventoryStore serves pantry items.
type InventoryStore interface {
	ListByUser(ctx context.Context, userID string) ([]inventory.Item, error)
}

// PreferenceStore serves and records learned preferences.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (feedback.Preferences, error)
	Record(ctx context.Context, userID, prefType, item string) error
}

// FeedbackExtractor pulls durable preferences out of a message.
type FeedbackExtractor interface {
	Extract(ctx context.Context, message string) feedback.ExtractResult
}

// PageFetcher turns a URL into prompt-sized page text.
type PageFetcher interface {
	PageText(ctx context.Context, url string) (string, error)
}

// MetricsRecorder receives agent execution metadata.
type MetricsRecorder interface {
	RecordMeta(meta shared.AgentMeta) error
}

// Deps bundles the router's collaborators. Fetcher, Extractor, and
// Metrics are optional.
type Deps struct {
	TextGen   llm.TextGenerator
	Plans     PlanStore
	Users     UserStore
	Inventory InventoryStore
	Prefs     PreferenceStore
	Extractor FeedbackExtractor
	Fetcher   PageFetcher
	Metrics   MetricsRecorder
	Logger    *zap.Logger
}

// Router executes chat requests. It always produces some reply text,
// never an error: failures degrade to apologetic messages per step.
type Router struct {
	deps Deps
}

// NewRouter creates a Router. A nil Logger is replaced with a no-op one.
func NewRouter(deps Deps) *Router {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Router{deps: deps}
}

// Respond handles one message and returns the full reply text.
func (r *Router) Respond(ctx context.Context, req Request) string {
	var sb strings.Builder
	r.Stream(ctx, req, func(chunk string) {
		if strings.HasPrefix(chunk, StatusPrefix) {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(chunk)
	})
	return sb.String()
}

// StatusPrefix marks progress updates in the stream, as opposed to reply
// content.
const StatusPrefix = "__STATUS__: "

// Stream handles one message, emitting status updates and then the reply
// content for each step. All emitted non-status chunks together form the
// same reply Respond would return.
func (r *Router) Stream(ctx context.Context, req Request, emit func(string)) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	req.Now = now

	emit(StatusPrefix + "Thinking...")
	steps := r.planSteps(ctx, req)

	replied := false
	for _, step := range steps {
		emit(StatusPrefix + statusFor(step.Type))
		out := r.runStep(ctx, req, step)
		if out == "" {
			continue
		}
		emit(out)
		replied = true
	}
	if !replied {
		emit("I couldn't generate a response. Please try again.")
	}

	emit(StatusPrefix + "Analyzing your input...")
	r.learnFeedback(ctx, req)
}

func statusFor(t StepType) string {
	switch t {
	case StepMealRetrieval:
		return "Searching your meal plan..."
	case StepCalorieEstimation:
		return "Analyzing food items..."
	case StepMealAdjustment:
		return "Processing meal adjustment..."
	default:
		return "Thinking..."
	}
}

type plannerPromptData struct {
	Today   string
	Message string
}

// planSteps asks the model to decompose the message. Any failure falls
// back to a single general chat step.
func (r *Router) planSteps(ctx context.Context, req Request) []Step {
	fallback := []Step{{Type: StepGeneralChat, Instruction: req.Message}}

	prompt, err := buildPrompt("planner", plannerPrompt, plannerPromptData{
		Today:   req.Now.Format("Monday, January 2, 2006"),
		Message: req.Message,
	})
	if err != nil {
		return fallback
	}

	start := time.Now()
	resp, err := r.deps.TextGen.GenerateContent(ctx, prompt)
	if err != nil {
		r.deps.Logger.Warn("step planner failed", zap.Error(err))
		return fallback
	}
	r.recordMeta(shared.AgentMeta{
		AgentName: "ChatPlanner",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	})

	parsed, ok := agenttext.ExtractJSON(resp.Content)
	if !ok {
		return fallback
	}
	raw, err := json.Marshal(parsed)
	if err != nil {
		return fallback
	}
	var out struct {
		Steps []Step `json:"steps"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fallback
	}

	steps := make([]Step, 0, len(out.Steps))
	for _, s := range out.Steps {
		switch s.Type {
		case StepMealAdjustment, StepMealRetrieval, StepCalorieEstimation, StepGeneralChat:
			steps = append(steps, s)
		}
	}
	if len(steps) == 0 {
		return fallback
	}
	return steps
}

// runStep executes one step. Failures become that step's text only; the
// other steps still run.
func (r *Router) runStep(ctx context.Context, req Request, step Step) string {
	switch step.Type {
	case StepMealAdjustment:
		return r.adjustMeal(ctx, req, step)
	case StepMealRetrieval:
		return r.retrieveMeals(ctx, req, step)
	case StepCalorieEstimation:
		return r.estimateCalories(ctx, req, step)
	default:
		return r.generalChat(ctx, req, step)
	}
}

// learnFeedback extracts and stores preferences from the message. Purely
// best-effort.
func (r *Router) learnFeedback(ctx context.Context, req Request) {
	if r.deps.Extractor == nil || r.deps.Prefs == nil {
		return
	}
	result := r.deps.Extractor.Extract(ctx, req.Message)
	r.recordMeta(result.Meta)

	record := func(prefType string, items []string) {
		for _, item := range items {
			if err := r.deps.Prefs.Record(ctx, req.UserID, prefType, item); err != nil {
				r.deps.Logger.Warn("failed to record preference",
					zap.String("type", prefType), zap.Error(err))
			}
		}
	}
	record(feedback.TypeLike, result.Preferences.Likes)
	record(feedback.TypeDislike, result.Preferences.Dislikes)
	record(feedback.TypeCuisine, result.Preferences.Cuisines)
}

func (r *Router) recordMeta(meta shared.AgentMeta) {
	if r.deps.Metrics == nil || meta.AgentName == "" {
		return
	}
	if err := r.deps.Metrics.RecordMeta(meta); err != nil {
		r.deps.Logger.Warn("failed to record metric", zap.Error(err))
	}
}

// buildPrompt renders one of the embedded prompt templates.
func buildPrompt(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
