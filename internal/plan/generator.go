package plan

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"
	"time"

	"mealmind/internal/agenttext"
	"mealmind/internal/inventory"
	"mealmind/internal/llm"
	"mealmind/internal/profile"
	"mealmind/internal/shared"
)

//go:embed consolidate_prompt.md
var consolidatePrompt string

// DefaultPlanDays is the planning horizon when none is configured.
const DefaultPlanDays = 7

// Generator produces weekly plan documents through the agent, falling
// back to the deterministic mock when the agent cannot deliver one.
type Generator struct {
	textGen  llm.TextGenerator
	planDays int
}

// NewGenerator creates a Generator on top of a text generator.
func NewGenerator(textGen llm.TextGenerator) *Generator {
	return &Generator{textGen: textGen, planDays: DefaultPlanDays}
}

// SetPlanDays overrides the planning horizon. Values below two are
// ignored because generation always runs as two batches.
func (g *Generator) SetPlanDays(days int) {
	if days >= 2 {
		g.planDays = days
	}
}

// GenerateInput is one user's aggregated planning context.
type GenerateInput struct {
	Profile     profile.Profile
	Inventory   []inventory.Item
	Preferences string
	RecentMeals []PreviousMealName
	StartDate   time.Time
}

// GenerateResult is a finished plan plus execution metadata. Mocked is
// true when the agent path failed and the template fallback was used.
type GenerateResult struct {
	Document *Document
	Mocked   bool
	Metas    []shared.AgentMeta
}

// Generate runs the two-batch generation: the front half of the horizon
// first, then the back half with a summary of the first batch as
// context, then merges and consolidates. A single call covering the full
// horizon proved unreliable, hence the split. Any agent, extraction, or
// merge failure degrades to the mock plan rather than returning an
// error.
func (g *Generator) Generate(ctx context.Context, in GenerateInput) GenerateResult {
	start := in.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	days := g.planDays
	if days < 2 {
		days = DefaultPlanDays
	}
	batchOneDays := (days + 1) / 2
	batchTwoDays := days - batchOneDays

	var metas []shared.AgentMeta

	batchA, meta, ok := g.generateBatch(ctx, in, 1, batchOneDays, "")
	metas = appendMeta(metas, meta)
	if !ok {
		return GenerateResult{Document: MockGenerate(in.Profile, start, days), Mocked: true, Metas: metas}
	}

	batchB, meta, ok := g.generateBatch(ctx, in, batchOneDays+1, batchTwoDays, PlannedMealsContext(batchA))
	metas = appendMeta(metas, meta)
	if !ok {
		return GenerateResult{Document: MockGenerate(in.Profile, start, days), Mocked: true, Metas: metas}
	}

	merged, err := Merge(batchA, batchB, start, len(in.Inventory))
	if err != nil {
		return GenerateResult{Document: MockGenerate(in.Profile, start, days), Mocked: true, Metas: metas}
	}

	metas = appendMeta(metas, g.ConsolidateShoppingList(ctx, merged))

	if !hasFutureSuggestions(merged) {
		suggestions, meta := g.GenerateSuggestions(ctx, in.Profile, PlannedMealsContext(merged))
		metas = appendMeta(metas, meta)
		if len(suggestions) > 0 {
			if merged.MealPlan.WeekSummary == nil {
				merged.MealPlan.WeekSummary = map[string]any{}
			}
			merged.MealPlan.WeekSummary["future_suggestions"] = suggestions
		}
	}

	return GenerateResult{Document: merged, Metas: metas}
}

func (g *Generator) generateBatch(ctx context.Context, in GenerateInput, startDay, numDays int, previousContext string) (*Document, shared.AgentMeta, bool) {
	agentStart := time.Now()
	prompt, err := BuildBatchPrompt(PromptInput{
		Profile:             in.Profile,
		Inventory:           in.Inventory,
		Preferences:         in.Preferences,
		StartDay:            startDay,
		NumDays:             numDays,
		StartDate:           in.StartDate,
		PreviousPlanContext: previousContext,
		RecentMeals:         in.RecentMeals,
	})
	if err != nil {
		return nil, shared.AgentMeta{}, false
	}

	resp, err := g.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, shared.AgentMeta{}, false
	}
	meta := shared.AgentMeta{
		AgentName: "PlanBatch",
		Usage:     resp.Usage,
		Latency:   time.Since(agentStart),
	}

	parsed, ok := agenttext.ExtractJSON(agenttext.Flatten(resp.Content))
	if !ok {
		return nil, meta, false
	}
	doc, err := ParseDocument(parsed)
	if err != nil {
		return nil, meta, false
	}
	if err := doc.Validate(); err != nil {
		return nil, meta, false
	}
	return doc, meta, true
}

// ConsolidateShoppingList asks the agent to merge near-duplicate shopping
// list entries. Strictly best-effort: on any failure the original list is
// kept and a zero meta is returned.
func (g *Generator) ConsolidateShoppingList(ctx context.Context, doc *Document) shared.AgentMeta {
	sl, ok := doc.ShoppingList()
	if !ok {
		return shared.AgentMeta{}
	}
	listJSON, err := json.MarshalIndent(sl, "", "  ")
	if err != nil {
		return shared.AgentMeta{}
	}

	prompt, err := buildConsolidatePrompt(string(listJSON))
	if err != nil {
		return shared.AgentMeta{}
	}

	agentStart := time.Now()
	resp, err := g.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return shared.AgentMeta{}
	}
	meta := shared.AgentMeta{
		AgentName: "ShoppingConsolidator",
		Usage:     resp.Usage,
		Latency:   time.Since(agentStart),
	}

	parsed, ok := agenttext.ExtractJSON(agenttext.Flatten(resp.Content))
	if !ok {
		return meta
	}
	obj, isObj := parsed.(map[string]any)
	if !isObj {
		return meta
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return meta
	}
	var consolidated ShoppingList
	if err := json.Unmarshal(raw, &consolidated); err != nil {
		return meta
	}
	_ = doc.SetShoppingList(consolidated)
	return meta
}

func buildConsolidatePrompt(listJSON string) (string, error) {
	tmpl, err := template.New("consolidate").Parse(consolidatePrompt)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ ListJSON string }{listJSON}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func appendMeta(metas []shared.AgentMeta, m shared.AgentMeta) []shared.AgentMeta {
	if m.AgentName == "" {
		return metas
	}
	return append(metas, m)
}
