package lesson

// Cardinality constraints of the lesson contract. The prompt, the JSON
// schema, and the validator must all agree on these.
const (
	// QuizLength is the exact number of quiz questions per lesson.
	QuizLength = 5

	// OptionCount is the exact number of options per quiz question.
	OptionCount = 4

	// NextStepCount is the exact number of next-step suggestions.
	NextStepCount = 3

	// MaxDiagramNodes is the diagram node cap. A soft contract: the
	// prompt instructs the model to stay under it, the validator does
	// not count nodes.
	MaxDiagramNodes = 12

	// MaxTopicLength bounds the user-supplied topic string.
	MaxTopicLength = 200
)

// Lesson is a validated one-call lesson response. Once constructed it is
// immutable: rendered for a single page and discarded. Every field has
// passed full validation — downstream consumers never re-check.
type Lesson struct {
	Title         string         `json:"title,omitempty"`
	ElevatorPitch string         `json:"elevator_pitch,omitempty"`
	Explanation   string         `json:"explanation"`
	Diagram       string         `json:"diagram"`
	Quiz          []QuizQuestion `json:"quiz"`
	NextSteps     []string       `json:"next_steps"`
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// GenerateInput holds the user-supplied parameters for one generation.
type GenerateInput struct {
	// Topic is the subject to teach. Required, bounded length.
	Topic string

	// Audience adjusts vocabulary level, e.g. "High school", "Bootcamp".
	Audience string

	// Style adjusts the tone, e.g. "Clear & practical".
	Style string

	// IncludeDemo asks for a tiny example/demo inside the lesson.
	IncludeDemo bool

	// Temperature overrides the configured sampling temperature when
	// set. Lower favors schema compliance over creativity.
	Temperature *float64

	// Model overrides the provider's configured model when non-empty.
	Model string
}
