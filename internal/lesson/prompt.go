package lesson

import (
	"fmt"
	"strings"

	"github.com/abhisek/lessonlab/internal/llm"
)

// lessonSystemPrompt names every required field, its type, and its
// cardinality. Providers without native structured output rely on this
// alone for schema compliance.
const lessonSystemPrompt = `You are a brilliant teaching assistant.
You create beginner-friendly explanations that are accurate, concrete, and engaging.

Output must be VALID JSON ONLY (no markdown fences, no extra commentary).
Follow the schema exactly.

Schema:
{
  "title": string,
  "elevator_pitch": string,
  "explanation": string,            // the mini-lesson, markdown allowed
  "diagram": string,                // a mermaid diagram (flowchart or sequenceDiagram). Must start with 'flowchart' or 'sequenceDiagram'. At most 12 nodes.
  "quiz": [                         // exactly 5 items
    {
      "question": string,
      "options": [string, string, string, string],
      "correct_index": 0|1|2|3,
      "explanation": string
    }
  ],
  "next_steps": [string, string, string]  // exactly 3 items
}`

// BuildRequest deterministically constructs the outbound LLM request
// for the given input. Pure function of its arguments; fails with
// ErrInvalidInput on a bad topic or temperature, before any network
// activity.
func BuildRequest(input GenerateInput, cfg Config) (llm.Request, error) {
	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return llm.Request{}, &ErrInvalidInput{Reason: "topic is empty"}
	}
	if len(topic) > MaxTopicLength {
		return llm.Request{}, &ErrInvalidInput{Reason: fmt.Sprintf("topic exceeds %d characters", MaxTopicLength)}
	}

	temperature := cfg.Temperature
	if input.Temperature != nil {
		t := *input.Temperature
		if t < 0 || t > 1 {
			return llm.Request{}, &ErrInvalidInput{Reason: fmt.Sprintf("temperature %.2f outside [0,1]", t)}
		}
		temperature = t
	}

	return llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, topic)},
		},
		Schema:      LessonSchema,
		Model:       input.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: temperature,
	}, nil
}

func buildUserMessage(input GenerateInput, topic string) string {
	var b strings.Builder

	b.WriteString("Create content for:\n")
	b.WriteString(fmt.Sprintf("- topic: %s\n", topic))
	if input.Audience != "" {
		b.WriteString(fmt.Sprintf("- audience: %s\n", input.Audience))
	}
	if input.Style != "" {
		b.WriteString(fmt.Sprintf("- style: %s\n", input.Style))
	}
	b.WriteString(fmt.Sprintf("- include_demo: %t\n", input.IncludeDemo))

	b.WriteString(`
Guidelines:
- Keep the lesson under ~450 words.
- Prefer concrete examples over jargon.
- Diagram: keep it simple and readable (<= 12 nodes).
- Quiz: 5 questions, 4 distinct options each, one correct answer.
- Next steps: exactly 3 concrete suggestions.`)

	return b.String()
}
