package store

import (
	"context"
	"time"
)

// LLMRequestEventData captures a single LLM API call for the log.
type LLMRequestEventData struct {
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded LLM API call.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results, newest first (0 = default 50)
	Purpose string // filter by purpose label ("" = all)
}

// PurposeUsage aggregates token usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// RequestLog is the append/query interface for LLM call telemetry.
// It records API call metadata for debugging and cost accounting; it is
// not lesson storage — generated lessons are never persisted.
type RequestLog interface {
	// Append records an LLM API call event.
	Append(ctx context.Context, data LLMRequestEventData) error

	// List returns recorded events, newest first.
	List(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// Get returns a single event by ID, or nil if not found.
	Get(ctx context.Context, id int) (*LLMEvent, error)

	// UsageByPurpose aggregates token usage per purpose label.
	UsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// UsageByModel aggregates token usage per model.
	UsageByModel(ctx context.Context) ([]ModelUsage, error)
}
