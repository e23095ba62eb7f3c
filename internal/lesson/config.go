package lesson

// Config holds lesson generation settings.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Kept low
	// by default to favor schema compliance over creativity.
	Temperature float64
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1400,
		Temperature: 0.4,
	}
}
