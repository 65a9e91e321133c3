// Package shared holds the small types passed between the planning
// agents and the metrics store, plus the retry combinator.
package shared

import (
	"time"
)

// TokenUsage counts the tokens one model call consumed. Model records
// which model served the call so daily rollups can tell providers apart.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// AgentMeta describes one agent execution for the metrics store: which
// agent ran, what it cost, and how long it took. Plan generation returns
// one meta per pipeline call; zero-usage metas are skipped at recording.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}
