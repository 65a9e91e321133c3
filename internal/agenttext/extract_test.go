package agenttext

import (
	"reflect"
	"testing"
)

func TestFlattenSkipsAgentSteps(t *testing.T) {
	response := []any{
		map[string]any{"thinking": "let me reason about this"},
		map[string]any{"tool_use": map[string]any{"name": "lookup"}},
		map[string]any{"tool_result": "42"},
		map[string]any{"content": "First block."},
		map[string]any{"content": []any{
			map[string]any{"text": "Second block."},
			"Third block.",
		}},
	}

	got := Flatten(response)
	want := "First block.\n\nSecond block.\n\nThird block."
	if got != want {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}

func TestFlattenOutputWrapper(t *testing.T) {
	response := map[string]any{"output": "  the answer  "}
	if got := Flatten(response); got != "the answer" {
		t.Errorf("Flatten() = %q, want %q", got, "the answer")
	}
}

func TestFlattenStringEncodedList(t *testing.T) {
	raw := `[{"thinking": "hmm"}, {"content": "done"}]`
	if got := Flatten(raw); got != "done" {
		t.Errorf("Flatten() = %q, want %q", got, "done")
	}
}

func TestFlattenStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	if got := Flatten(raw); got != `{"a": 1}` {
		t.Errorf("Flatten() = %q, want %q", got, `{"a": 1}`)
	}
}

func TestFlattenEmptyListFallback(t *testing.T) {
	if got := Flatten([]any{}); got != "No clear response found" {
		t.Errorf("Flatten() = %q", got)
	}
}

func TestExtractJSONWholeString(t *testing.T) {
	v, ok := ExtractJSON(`{"x": 1}`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := map[string]any{"x": float64(1)}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestExtractJSONEmbeddedArray(t *testing.T) {
	v, ok := ExtractJSON(`Here is your list: [1, 2, 3] — enjoy.`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := []any{float64(1), float64(2), float64(3)}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestExtractJSONEmbeddedObject(t *testing.T) {
	v, ok := ExtractJSON("Sure! The plan is:\n{\"meal\": \"tofu bowl\"}\nLet me know.")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	obj, ok := v.(map[string]any)
	if !ok || obj["meal"] != "tofu bowl" {
		t.Errorf("got %v", v)
	}
}

func TestExtractJSONPrefersArrayOverObject(t *testing.T) {
	v, ok := ExtractJSON(`prefix [ {"a": 1} ] suffix`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if _, isList := v.([]any); !isList {
		t.Errorf("expected array result, got %T", v)
	}
}

func TestExtractJSONGarbage(t *testing.T) {
	if v, ok := ExtractJSON("no structured data here"); ok || v != nil {
		t.Errorf("expected (nil,false), got (%v,%v)", v, ok)
	}
}
