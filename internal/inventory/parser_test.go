package inventory

import (
	"context"
	"strings"
	"testing"

	"mealmind/internal/llm"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return llm.ContentResponse{}, s.err
	}
	return llm.ContentResponse{Content: s.response}, nil
}

func TestParseEmptyInputSkipsModel(t *testing.T) {
	gen := &stubGenerator{}
	p := NewParser(gen)

	res, err := p.Parse(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 0 {
		t.Errorf("expected no items, got %d", len(res.Items))
	}
	if len(gen.prompts) != 0 {
		t.Error("expected no model call for empty input")
	}
}

func TestParseNormalizesItems(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" + `[
		{"item_name": "Chicken Breast", "quantity": 2.0, "unit": "lbs", "category": "Meat & Seafood"},
		{"item_name": "Mystery Goo", "quantity": 1.0, "unit": "jar", "category": "Alchemy"},
		{"quantity": -3}
	]` + "\n```"}
	p := NewParser(gen)

	res, err := p.Parse(context.Background(), "2 lbs chicken and stuff")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(res.Items))
	}
	if res.Items[0].Category != "Meat & Seafood" {
		t.Errorf("category = %q", res.Items[0].Category)
	}
	if res.Items[1].Category != "Other" {
		t.Errorf("invalid category should map to Other, got %q", res.Items[1].Category)
	}
	if res.Items[2].ItemName != "Unknown Item" || res.Items[2].Quantity != 1 {
		t.Errorf("defaults not applied: %+v", res.Items[2])
	}
}

func TestParseSingleObjectResponse(t *testing.T) {
	gen := &stubGenerator{response: `{"item_name": "Milk", "quantity": 1.0, "unit": "gallon", "category": "Dairy & Eggs"}`}
	p := NewParser(gen)

	res, err := p.Parse(context.Background(), "milk")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].ItemName != "Milk" {
		t.Errorf("items = %+v", res.Items)
	}
}

func TestParsePromptContainsInput(t *testing.T) {
	gen := &stubGenerator{response: "[]"}
	p := NewParser(gen)

	if _, err := p.Parse(context.Background(), "a dozen eggs"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "a dozen eggs") {
		t.Error("prompt should embed the raw user text")
	}
}
