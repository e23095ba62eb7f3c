package lesson

import "github.com/abhisek/lessonlab/internal/llm"

// LessonSchema is the JSON schema sent to providers with native
// structured output. It mirrors the contract in types.go; the prompt
// builder and the validator both agree with it on names and
// cardinalities.
var LessonSchema = &llm.Schema{
	Name:        "lesson",
	Description: "A mini-lesson with explanation, diagram, quiz, and next steps",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title for the lesson (3-8 words)",
			},
			"elevator_pitch": map[string]any{
				"type":        "string",
				"description": "One-paragraph hook for why this topic matters",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "The mini-lesson as markdown prose, under ~450 words",
			},
			"diagram": map[string]any{
				"type":        "string",
				"description": "A mermaid diagram (flowchart or sequenceDiagram), at most 12 nodes",
			},
			"quiz": map[string]any{
				"type":        "array",
				"minItems":    QuizLength,
				"maxItems":    QuizLength,
				"description": "Exactly 5 multiple-choice questions",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type": "string",
						},
						"options": map[string]any{
							"type":        "array",
							"minItems":    OptionCount,
							"maxItems":    OptionCount,
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 distinct options",
						},
						"correct_index": map[string]any{
							"type":    "integer",
							"minimum": 0,
							"maximum": OptionCount - 1,
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief explanation of the correct answer",
						},
					},
					"required":             []any{"question", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
			"next_steps": map[string]any{
				"type":        "array",
				"minItems":    NextStepCount,
				"maxItems":    NextStepCount,
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 3 follow-up suggestions",
			},
		},
		"required":             []any{"title", "elevator_pitch", "explanation", "diagram", "quiz", "next_steps"},
		"additionalProperties": false,
	},
}
