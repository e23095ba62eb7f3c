package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
)

// lessonOutput is the decoded-but-unvalidated model reply. Pointer
// fields distinguish a missing key from a present-but-empty value, and
// unknown extra fields are ignored for forward compatibility.
type lessonOutput struct {
	Title         *string      `json:"title"`
	ElevatorPitch *string      `json:"elevator_pitch"`
	Explanation   *string      `json:"explanation"`
	Diagram       *string      `json:"diagram"`
	Quiz          []quizOutput `json:"quiz"`
	NextSteps     []string     `json:"next_steps"`
}

type quizOutput struct {
	Question     *string  `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// Parse converts raw model text into a validated Lesson or a typed
// failure. This is the sole trust boundary: every field access past it
// assumes the record already passed full validation. It never returns a
// partially populated Lesson alongside an error.
func Parse(raw string) (*Lesson, error) {
	extracted, ok := extractJSON(raw)
	if !ok {
		return nil, &ErrParse{Raw: raw, Err: errors.New("no JSON object found in response")}
	}

	// Establish that the extracted text is JSON at all before holding
	// it to the contract.
	var probe any
	if err := json.Unmarshal([]byte(extracted), &probe); err != nil {
		return nil, &ErrParse{Raw: raw, Err: err}
	}
	if _, isObject := probe.(map[string]any); !isObject {
		return nil, &ErrParse{Raw: raw, Err: errors.New("top-level JSON value is not an object")}
	}

	var out lessonOutput
	if err := json.Unmarshal([]byte(extracted), &out); err != nil {
		// Parses as JSON but a field has the wrong type — a shape
		// violation, not a parse failure.
		field := "response"
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			field = typeErr.Field
		}
		return nil, &ErrSchemaViolation{Field: field, Reason: err.Error(), Raw: raw}
	}

	lesson, err := out.validate(raw)
	if err != nil {
		return nil, err
	}

	lesson.Diagram = normalizeDiagram(lesson.Diagram)
	return lesson, nil
}

// validate enforces the contract invariants: required fields present,
// exact cardinalities, correct_index within its own options. Missing or
// invalid fields are reported by name, never coerced to defaults.
func (out *lessonOutput) validate(raw string) (*Lesson, error) {
	violation := func(field, reason string) error {
		return &ErrSchemaViolation{Field: field, Reason: reason, Raw: raw}
	}

	if out.Explanation == nil {
		return nil, violation("explanation", "required field is missing")
	}
	if *out.Explanation == "" {
		return nil, violation("explanation", "must be non-empty")
	}
	if out.Diagram == nil {
		return nil, violation("diagram", "required field is missing")
	}

	if out.Quiz == nil {
		return nil, violation("quiz", "required field is missing")
	}
	if len(out.Quiz) != QuizLength {
		return nil, violation("quiz", fmt.Sprintf("expected exactly %d questions, got %d", QuizLength, len(out.Quiz)))
	}

	quiz := make([]QuizQuestion, len(out.Quiz))
	for i, q := range out.Quiz {
		if q.Question == nil || *q.Question == "" {
			return nil, violation(fmt.Sprintf("quiz[%d].question", i), "must be non-empty")
		}
		if len(q.Options) != OptionCount {
			return nil, violation(fmt.Sprintf("quiz[%d].options", i),
				fmt.Sprintf("expected exactly %d options, got %d", OptionCount, len(q.Options)))
		}
		if dup := firstDuplicate(q.Options); dup != "" {
			return nil, violation(fmt.Sprintf("quiz[%d].options", i),
				fmt.Sprintf("options must be distinct, %q repeats", dup))
		}
		if q.CorrectIndex == nil {
			return nil, violation(fmt.Sprintf("quiz[%d].correct_index", i), "required field is missing")
		}
		if *q.CorrectIndex < 0 || *q.CorrectIndex >= len(q.Options) {
			return nil, violation(fmt.Sprintf("quiz[%d].correct_index", i),
				fmt.Sprintf("index %d out of range [0,%d]", *q.CorrectIndex, len(q.Options)-1))
		}
		quiz[i] = QuizQuestion{
			Question:     *q.Question,
			Options:      q.Options,
			CorrectIndex: *q.CorrectIndex,
			Explanation:  q.Explanation,
		}
	}

	if out.NextSteps == nil {
		return nil, violation("next_steps", "required field is missing")
	}
	if len(out.NextSteps) != NextStepCount {
		return nil, violation("next_steps", fmt.Sprintf("expected exactly %d entries, got %d", NextStepCount, len(out.NextSteps)))
	}
	for i, s := range out.NextSteps {
		if s == "" {
			return nil, violation(fmt.Sprintf("next_steps[%d]", i), "must be non-empty")
		}
	}

	lesson := &Lesson{
		Explanation: *out.Explanation,
		Diagram:     *out.Diagram,
		Quiz:        quiz,
		NextSteps:   out.NextSteps,
	}
	// Title and pitch are prompted for but outside the contract's
	// invariants: a response carrying only the four core fields is
	// still valid.
	if out.Title != nil {
		lesson.Title = *out.Title
	}
	if out.ElevatorPitch != nil {
		lesson.ElevatorPitch = *out.ElevatorPitch
	}
	return lesson, nil
}

func firstDuplicate(options []string) string {
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		if seen[o] {
			return o
		}
		seen[o] = true
	}
	return ""
}
