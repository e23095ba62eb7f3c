package lesson

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/lessonlab/internal/llm"
)

// Service runs the one-call lesson pipeline: build prompt, call the
// provider once, defensively parse the reply. Synchronous and
// stateless; there is no retry loop here — regeneration is a user
// action in the UI.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Result is a successful generation: the validated lesson plus the raw
// model text and call metadata for the debugging panel.
type Result struct {
	Lesson *Lesson   `json:"lesson"`
	Raw    string    `json:"raw"`
	Model  string    `json:"model"`
	Usage  llm.Usage `json:"usage"`
}

// Generate runs one generation for the given input. Failures are typed:
// ErrInvalidInput, ErrTransport, ErrParse, or ErrSchemaViolation — all
// terminal for this request.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "lesson")

	req, err := BuildRequest(input, s.cfg)
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Generate(ctx, req)

	var raw string
	var model string
	var usage llm.Usage
	switch {
	case err == nil:
		raw = string(resp.Content)
		model = resp.Model
		usage = resp.Usage
	default:
		// Provider-side schema validation failing is not terminal:
		// the core validator decides, and extraction may still rescue
		// a fenced reply. Truncated replies get the same treatment so
		// their partial text surfaces in the parse failure.
		var inv *llm.ErrInvalidResponse
		var trunc *llm.ErrMaxTokensExceeded
		switch {
		case errors.As(err, &inv) && len(inv.Content) > 0:
			raw = string(inv.Content)
		case errors.As(err, &trunc) && len(trunc.Content) > 0:
			raw = string(trunc.Content)
		default:
			return nil, &ErrTransport{Err: err}
		}
		model = s.provider.ModelID()
	}

	if strings.TrimSpace(raw) == "" {
		return nil, &ErrParse{Raw: raw, Err: errors.New("model returned an empty response")}
	}

	parsed, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	return &Result{
		Lesson: parsed,
		Raw:    raw,
		Model:  model,
		Usage:  usage,
	}, nil
}
