package feedback

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"
	"time"

	"mealmind/internal/agenttext"
	"mealmind/internal/llm"
	"mealmind/internal/shared"
)

//go:embed extractor_prompt.md
var extractorPrompt string

type extractorPromptData struct {
	Message string
}

// Extractor pulls durable preferences out of chat messages.
type Extractor struct {
	textGen llm.TextGenerator
}

// NewExtractor creates an Extractor on top of a text generator.
func NewExtractor(textGen llm.TextGenerator) *Extractor {
	return &Extractor{textGen: textGen}
}

// ExtractResult holds extracted preferences plus agent metadata.
type ExtractResult struct {
	Preferences Preferences
	Meta        shared.AgentMeta
}

// Extract returns the preferences stated in a message. Extraction is
// best-effort: any model or parse failure yields empty preferences and
// a nil error, since losing a preference is preferable to failing a chat
// turn.
func (e *Extractor) Extract(ctx context.Context, message string) ExtractResult {
	start := time.Now()
	prompt, err := buildExtractorPrompt(extractorPromptData{Message: message})
	if err != nil {
		return ExtractResult{}
	}

	resp, err := e.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return ExtractResult{}
	}

	meta := shared.AgentMeta{
		AgentName: "FeedbackExtractor",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	parsed, ok := agenttext.ExtractJSON(resp.Content)
	if !ok {
		return ExtractResult{Meta: meta}
	}

	raw, err := json.Marshal(parsed)
	if err != nil {
		return ExtractResult{Meta: meta}
	}

	var out struct {
		Likes    []string `json:"likes"`
		Dislikes []string `json:"dislikes"`
		Cuisines []string `json:"cuisines"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return ExtractResult{Meta: meta}
	}

	return ExtractResult{
		Preferences: Preferences{
			Likes:    out.Likes,
			Dislikes: out.Dislikes,
			Cuisines: out.Cuisines,
		},
		Meta: meta,
	}
}

// Persist records every extracted preference for a user.
func (e *Extractor) Persist(ctx context.Context, repo *Repository, userID string, prefs Preferences) error {
	for _, item := range prefs.Likes {
		if err := repo.Record(ctx, userID, TypeLike, item); err != nil {
			return err
		}
	}
	for _, item := range prefs.Dislikes {
		if err := repo.Record(ctx, userID, TypeDislike, item); err != nil {
			return err
		}
	}
	for _, item := range prefs.Cuisines {
		if err := repo.Record(ctx, userID, TypeCuisine, item); err != nil {
			return err
		}
	}
	return nil
}

func buildExtractorPrompt(data extractorPromptData) (string, error) {
	tmpl, err := template.New("feedback").Parse(extractorPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
