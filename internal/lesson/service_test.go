package lesson

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/lessonlab/internal/llm"
)

func newTestService(t *testing.T, responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	return NewService(mock, DefaultConfig()), mock
}

func TestService_Generate(t *testing.T) {
	raw := mustJSON(t, validLessonMap())
	svc, mock := newTestService(t, llm.MockResponse{
		Content: json.RawMessage(raw),
		Usage:   llm.Usage{InputTokens: 250, OutputTokens: 800, TotalTokens: 1050},
	})

	result, err := svc.Generate(context.Background(), GenerateInput{Topic: "SQL joins"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Lesson == nil || len(result.Lesson.Quiz) != QuizLength {
		t.Fatalf("expected a validated lesson, got %+v", result.Lesson)
	}
	if result.Raw != raw {
		t.Error("expected raw model text preserved on result")
	}
	if result.Model != "mock" {
		t.Errorf("unexpected model: %q", result.Model)
	}
	if result.Usage.TotalTokens != 1050 {
		t.Errorf("unexpected usage: %+v", result.Usage)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected exactly one provider call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil {
		t.Error("expected structured-output schema on the outbound request")
	}
	if req.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("unexpected max tokens: %d", req.MaxTokens)
	}
}

func TestService_Generate_InvalidInputSkipsProvider(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.Generate(context.Background(), GenerateInput{Topic: "  "})
	var inputErr *ErrInvalidInput
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected ErrInvalidInput, got %T: %v", err, err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no provider calls for invalid input, got %d", mock.CallCount())
	}
}

func TestService_Generate_TransportError(t *testing.T) {
	svc, _ := newTestService(t, llm.MockResponse{
		Err: &llm.ErrRateLimit{RetryAfter: 30 * time.Second},
	})

	_, err := svc.Generate(context.Background(), GenerateInput{Topic: "SQL joins"})
	var transportErr *ErrTransport
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected ErrTransport, got %T: %v", err, err)
	}
	var rateErr *llm.ErrRateLimit
	if !errors.As(err, &rateErr) {
		t.Error("expected the provider error to remain unwrappable")
	}
}

// A provider that rejects its own structured output still hands text
// back; the core validator gets the final say.
func TestService_Generate_RescuesProviderInvalidResponse(t *testing.T) {
	raw := "```json\n" + mustJSON(t, validLessonMap()) + "\n```"
	svc, _ := newTestService(t, llm.MockResponse{
		Err: &llm.ErrInvalidResponse{
			Err:     errors.New("schema validation failed"),
			Content: json.RawMessage(raw),
		},
	})

	result, err := svc.Generate(context.Background(), GenerateInput{Topic: "SQL joins"})
	if err != nil {
		t.Fatalf("expected extraction to rescue the fenced reply, got: %v", err)
	}
	if len(result.Lesson.Quiz) != QuizLength {
		t.Fatalf("expected a validated lesson, got %+v", result.Lesson)
	}
}

// A truncated reply carries partial text; the parse failure must
// surface it rather than hiding it behind a transport error.
func TestService_Generate_TruncatedResponse(t *testing.T) {
	partial := `{"explanation":"An inner join keeps match`
	svc, _ := newTestService(t, llm.MockResponse{
		Err: &llm.ErrMaxTokensExceeded{Content: json.RawMessage(partial)},
	})

	_, err := svc.Generate(context.Background(), GenerateInput{Topic: "SQL joins"})
	var parseErr *ErrParse
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ErrParse, got %T: %v", err, err)
	}
	if parseErr.Raw != partial {
		t.Errorf("expected partial text attached, got %q", parseErr.Raw)
	}
}

func TestService_Generate_EmptyResponse(t *testing.T) {
	svc, _ := newTestService(t, llm.MockResponse{Content: json.RawMessage("  ")})

	_, err := svc.Generate(context.Background(), GenerateInput{Topic: "SQL joins"})
	var parseErr *ErrParse
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ErrParse, got %T: %v", err, err)
	}
}

func TestService_Generate_RefusalText(t *testing.T) {
	svc, _ := newTestService(t, llm.MockResponse{
		Content: json.RawMessage("Sorry, I can't help with that."),
	})

	_, err := svc.Generate(context.Background(), GenerateInput{Topic: "SQL joins"})
	var parseErr *ErrParse
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ErrParse, got %T: %v", err, err)
	}
	if parseErr.Raw == "" {
		t.Error("expected raw text attached for the debugging panel")
	}
}

func TestService_Generate_SchemaViolation(t *testing.T) {
	m := validLessonMap()
	delete(m, "quiz")
	svc, _ := newTestService(t, llm.MockResponse{Content: json.RawMessage(mustJSON(t, m))})

	_, err := svc.Generate(context.Background(), GenerateInput{Topic: "SQL joins"})
	var schemaErr *ErrSchemaViolation
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected ErrSchemaViolation, got %T: %v", err, err)
	}
	if schemaErr.Field != "quiz" {
		t.Errorf("expected violation naming quiz, got %q", schemaErr.Field)
	}
}

func TestService_Generate_ModelOverride(t *testing.T) {
	svc, mock := newTestService(t, llm.MockResponse{Content: json.RawMessage(mustJSON(t, validLessonMap()))})

	_, err := svc.Generate(context.Background(), GenerateInput{Topic: "SQL joins", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mock.Calls[0].Model; got != "gpt-4o" {
		t.Errorf("expected model override on the outbound request, got %q", got)
	}
}
