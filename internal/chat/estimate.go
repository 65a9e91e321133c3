package chat

import (
	"context"
	_ "embed"
	"regexp"
	"time"

	"go.uber.org/zap"

	"mealmind/internal/shared"
)

//go:embed estimate_prompt.md
var estimatePrompt string

type estimatePromptData struct {
	Message  string
	PageText string
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

// estimateCalories answers nutrition estimation questions. When the
// message carries a URL the page text is fetched and included as context.
func (r *Router) estimateCalories(ctx context.Context, req Request, step Step) string {
	text := instructionOrMessage(step, req)

	var pageText string
	if url := urlPattern.FindString(text); url != "" && r.deps.Fetcher != nil {
		fetched, err := r.deps.Fetcher.PageText(ctx, url)
		if err != nil {
			r.deps.Logger.Warn("page fetch failed", zap.String("url", url), zap.Error(err))
		} else {
			pageText = fetched
		}
	}

	prompt, err := buildPrompt("estimate", estimatePrompt, estimatePromptData{
		Message:  text,
		PageText: pageText,
	})
	if err != nil {
		return "I couldn't analyze that right now. Please try again."
	}

	start := time.Now()
	resp, err := r.deps.TextGen.GenerateContent(ctx, prompt)
	if err != nil {
		r.deps.Logger.Warn("calorie estimation failed", zap.Error(err))
		return "I couldn't analyze that right now. Please try again."
	}
	r.recordMeta(shared.AgentMeta{
		AgentName: "CalorieEstimator",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	})
	return resp.Content
}
