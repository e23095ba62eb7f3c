package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// validLessonMap builds a conforming response as a map so individual
// tests can break one field at a time.
func validLessonMap() map[string]any {
	quiz := make([]any, QuizLength)
	for i := range quiz {
		quiz[i] = map[string]any{
			"question":      fmt.Sprintf("Question %d?", i+1),
			"options":       []any{"alpha", "beta", "gamma", "delta"},
			"correct_index": i % OptionCount,
			"explanation":   "Because.",
		}
	}
	return map[string]any{
		"title":          "SQL Joins",
		"elevator_pitch": "Joins combine rows from two tables.",
		"explanation":    "# Joins\nAn inner join keeps matching rows.",
		"diagram":        "flowchart LR\n  A[orders] --> B[customers]",
		"quiz":           quiz,
		"next_steps":     []any{"Read the docs", "Write a query", "Explain it to a friend"},
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestParse_ValidResponse(t *testing.T) {
	l, err := Parse(mustJSON(t, validLessonMap()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Quiz) != QuizLength {
		t.Errorf("expected %d quiz entries, got %d", QuizLength, len(l.Quiz))
	}
	if len(l.NextSteps) != NextStepCount {
		t.Errorf("expected %d next steps, got %d", NextStepCount, len(l.NextSteps))
	}
	for i, q := range l.Quiz {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			t.Errorf("quiz[%d].CorrectIndex %d out of bounds", i, q.CorrectIndex)
		}
	}
	if l.Title != "SQL Joins" {
		t.Errorf("unexpected title: %q", l.Title)
	}
}

func TestParse_FencedResponse(t *testing.T) {
	m := validLessonMap()
	m["diagram"] = "graph TD; A-->B"
	raw := "Here you go:\n```json\n" + mustJSON(t, m) + "\n```"

	l, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Diagram != "graph TD; A-->B" {
		t.Errorf("expected diagram to survive extraction, got %q", l.Diagram)
	}
}

func TestParse_NoJSON(t *testing.T) {
	_, err := Parse("Sorry, I can't help with that.")
	var parseErr *ErrParse
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ErrParse, got %T: %v", err, err)
	}
	if parseErr.Raw != "Sorry, I can't help with that." {
		t.Errorf("expected raw text attached, got %q", parseErr.Raw)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse(`{"explanation": "x",`)
	var parseErr *ErrParse
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ErrParse, got %T: %v", err, err)
	}
}

func TestParse_TopLevelArray(t *testing.T) {
	// An array contains no '{' pair; a map inside one does, and the
	// extractor will then find a valid inner object. Use a flat array.
	_, err := Parse(`[1, 2, 3]`)
	var parseErr *ErrParse
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ErrParse, got %T: %v", err, err)
	}
}

func TestParse_MissingRequiredFields(t *testing.T) {
	for _, field := range []string{"explanation", "diagram", "quiz", "next_steps"} {
		t.Run(field, func(t *testing.T) {
			m := validLessonMap()
			delete(m, field)

			_, err := Parse(mustJSON(t, m))
			var schemaErr *ErrSchemaViolation
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected ErrSchemaViolation, got %T: %v", err, err)
			}
			if schemaErr.Field != field {
				t.Errorf("expected violation naming %q, got %q", field, schemaErr.Field)
			}
		})
	}
}

func TestParse_MissingTitleStillValid(t *testing.T) {
	m := validLessonMap()
	delete(m, "title")
	delete(m, "elevator_pitch")

	l, err := Parse(mustJSON(t, m))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Title != "" {
		t.Errorf("expected empty title, got %q", l.Title)
	}
}

func TestParse_QuizCardinality(t *testing.T) {
	m := validLessonMap()
	m["quiz"] = m["quiz"].([]any)[:4]

	_, err := Parse(mustJSON(t, m))
	var schemaErr *ErrSchemaViolation
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrSchemaViolation, got %T: %v", err, err)
	}
	if schemaErr.Field != "quiz" {
		t.Errorf("expected violation naming quiz, got %q", schemaErr.Field)
	}
}

func TestParse_CorrectIndexOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 4, 99} {
		m := validLessonMap()
		m["quiz"].([]any)[2].(map[string]any)["correct_index"] = idx

		_, err := Parse(mustJSON(t, m))
		var schemaErr *ErrSchemaViolation
		if !errors.As(err, &schemaErr) {
			t.Fatalf("index %d: expected ErrSchemaViolation, got %T: %v", idx, err, err)
		}
		if schemaErr.Field != "quiz[2].correct_index" {
			t.Errorf("index %d: expected violation naming quiz[2].correct_index, got %q", idx, schemaErr.Field)
		}
	}
}

func TestParse_DuplicateOptions(t *testing.T) {
	m := validLessonMap()
	m["quiz"].([]any)[0].(map[string]any)["options"] = []any{"same", "same", "a", "b"}

	_, err := Parse(mustJSON(t, m))
	var schemaErr *ErrSchemaViolation
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrSchemaViolation, got %T: %v", err, err)
	}
	if schemaErr.Field != "quiz[0].options" {
		t.Errorf("expected violation naming quiz[0].options, got %q", schemaErr.Field)
	}
}

func TestParse_WrongOptionCount(t *testing.T) {
	m := validLessonMap()
	m["quiz"].([]any)[1].(map[string]any)["options"] = []any{"a", "b", "c"}

	_, err := Parse(mustJSON(t, m))
	var schemaErr *ErrSchemaViolation
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrSchemaViolation, got %T: %v", err, err)
	}
	if schemaErr.Field != "quiz[1].options" {
		t.Errorf("expected violation naming quiz[1].options, got %q", schemaErr.Field)
	}
}

func TestParse_WrongFieldType(t *testing.T) {
	m := validLessonMap()
	m["quiz"] = "not an array"

	_, err := Parse(mustJSON(t, m))
	var schemaErr *ErrSchemaViolation
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrSchemaViolation, got %T: %v", err, err)
	}
	if !strings.Contains(schemaErr.Field, "quiz") {
		t.Errorf("expected violation naming quiz, got %q", schemaErr.Field)
	}
}

func TestParse_NextStepsCardinality(t *testing.T) {
	m := validLessonMap()
	m["next_steps"] = []any{"only", "two"}

	_, err := Parse(mustJSON(t, m))
	var schemaErr *ErrSchemaViolation
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrSchemaViolation, got %T: %v", err, err)
	}
	if schemaErr.Field != "next_steps" {
		t.Errorf("expected violation naming next_steps, got %q", schemaErr.Field)
	}
}

func TestParse_UnknownFieldsIgnored(t *testing.T) {
	m := validLessonMap()
	m["extra_field"] = map[string]any{"anything": "goes"}

	if _, err := Parse(mustJSON(t, m)); err != nil {
		t.Fatalf("expected unknown fields to be ignored, got: %v", err)
	}
}

func TestParse_DiagramFallback(t *testing.T) {
	m := validLessonMap()
	m["diagram"] = "this is not a mermaid diagram"

	l, err := Parse(mustJSON(t, m))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Diagram != fallbackDiagram {
		t.Errorf("expected fallback diagram, got %q", l.Diagram)
	}
}

func TestParse_Idempotent(t *testing.T) {
	first, err := Parse(mustJSON(t, validLessonMap()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	serialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal lesson: %v", err)
	}

	second, err := Parse(string(serialized))
	if err != nil {
		t.Fatalf("re-validation failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-validation changed the lesson:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
