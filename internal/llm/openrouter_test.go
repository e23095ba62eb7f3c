package llm

import "testing"

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewOpenRouterProvider_PassthroughModel(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey: "test-key",
		Model:  "google/gemini-2.0-flash-exp",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// OpenRouter model IDs are not in the OpenAI alias table and pass
	// through unchanged.
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Fatalf("expected passthrough model ID, got %q", p.ModelID())
	}
}
