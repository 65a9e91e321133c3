// Package agenttext normalizes opaque agent responses into plain text and
// extracts JSON payloads from them on a best-effort basis.
package agenttext

import (
	"encoding/json"
	"strings"
)

// Flatten reduces an agent response of unknown shape to plain text.
// Responses may be a bare string, a list of step records, or an object
// wrapping the answer under an "output" key. Thinking, tool-use and
// tool-result records are dropped; the remaining content blocks are
// joined with blank lines and stripped of markdown code fences.
func Flatten(response any) string {
	data := response
	if obj, ok := response.(map[string]any); ok {
		if out, ok := obj["output"]; ok {
			data = out
		}
	}

	if list, ok := data.([]any); ok {
		return flattenList(list)
	}

	if s, ok := data.(string); ok {
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			if list, ok := parsed.([]any); ok {
				return flattenList(list)
			}
		}
		return cleanText(s)
	}

	// Last resort: render whatever it is as JSON.
	if b, err := json.Marshal(data); err == nil {
		return cleanText(string(b))
	}
	return ""
}

func flattenList(items []any) string {
	var results []string
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, skip := record["thinking"]; skip {
			continue
		}
		if _, skip := record["tool_use"]; skip {
			continue
		}
		if _, skip := record["tool_result"]; skip {
			continue
		}
		if content, ok := record["content"]; ok {
			switch c := content.(type) {
			case []any:
				for _, block := range c {
					switch b := block.(type) {
					case map[string]any:
						if text, ok := b["text"].(string); ok {
							results = append(results, text)
						}
					case string:
						results = append(results, b)
					}
				}
			case string:
				results = append(results, c)
			}
			continue
		}
		if text, ok := record["text"].(string); ok {
			results = append(results, text)
		}
	}
	if len(results) == 0 {
		return "No clear response found"
	}
	return cleanText(strings.Join(results, "\n\n"))
}

func cleanText(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// ExtractJSON pulls a JSON value out of free-form agent text. It tries the
// whole string first, then the outermost [...] span, then the outermost
// {...} span. The second return is false when nothing parses.
func ExtractJSON(text string) (any, bool) {
	cleaned := strings.TrimSpace(text)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err == nil {
		return v, true
	}

	if start, end := strings.Index(cleaned, "["), strings.LastIndex(cleaned, "]"); start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &v); err == nil {
			return v, true
		}
	}

	if start, end := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}"); start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &v); err == nil {
			return v, true
		}
	}

	return nil, false
}
