package inventory

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"mealmind/internal/agenttext"
	"mealmind/internal/llm"
	"mealmind/internal/shared"
)

//go:embed parser_prompt.md
var parserPrompt string

// ValidCategories are the canonical inventory categories. Anything the
// model returns outside this set is mapped to "Other".
var ValidCategories = []string{
	"Produce", "Dairy & Eggs", "Meat & Seafood", "Pantry",
	"Frozen", "Beverages", "Snacks", "Spices & Seasonings", "Other",
}

type parserPromptData struct {
	Categories string
	Text       string
}

// Parser turns free-text grocery descriptions into structured items.
type Parser struct {
	textGen llm.TextGenerator
}

// NewParser creates a Parser on top of a text generator.
func NewParser(textGen llm.TextGenerator) *Parser {
	return &Parser{textGen: textGen}
}

// ParseResult holds parsed items plus agent metadata.
type ParseResult struct {
	Items []Item
	Meta  shared.AgentMeta
}

// Parse extracts inventory items from natural-language text. Empty input
// yields an empty result without calling the model.
func (p *Parser) Parse(ctx context.Context, text string) (ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return ParseResult{}, nil
	}

	start := time.Now()
	prompt, err := buildParserPrompt(parserPromptData{
		Categories: strings.Join(ValidCategories, ", "),
		Text:       text,
	})
	if err != nil {
		return ParseResult{}, err
	}

	resp, err := p.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return ParseResult{}, fmt.Errorf("inventory parse failed: %w", err)
	}

	meta := shared.AgentMeta{
		AgentName: "InventoryParser",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	parsed, ok := agenttext.ExtractJSON(resp.Content)
	if !ok {
		return ParseResult{Meta: meta}, fmt.Errorf("no parseable inventory in response")
	}

	// A single object is treated as a one-item list.
	records, ok := parsed.([]any)
	if !ok {
		if obj, isObj := parsed.(map[string]any); isObj {
			records = []any{obj}
		} else {
			return ParseResult{Meta: meta}, fmt.Errorf("unexpected inventory payload shape")
		}
	}

	items := make([]Item, 0, len(records))
	for _, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, normalizeItem(obj))
	}

	return ParseResult{Items: items, Meta: meta}, nil
}

func normalizeItem(obj map[string]any) Item {
	item := Item{
		ItemName: "Unknown Item",
		Quantity: 1,
		Unit:     "unit",
		Category: "Other",
	}
	if name, ok := obj["item_name"].(string); ok && name != "" {
		item.ItemName = name
	}
	if qty, ok := obj["quantity"].(float64); ok && qty > 0 {
		item.Quantity = qty
	}
	if unit, ok := obj["unit"].(string); ok && unit != "" {
		item.Unit = unit
	}
	if cat, ok := obj["category"].(string); ok {
		for _, valid := range ValidCategories {
			if cat == valid {
				item.Category = cat
				break
			}
		}
	}
	return item
}

func buildParserPrompt(data parserPromptData) (string, error) {
	tmpl, err := template.New("inventory").Parse(parserPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// MarshalItems renders items as the JSON snapshot embedded in planner prompts.
func MarshalItems(items []Item) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}
