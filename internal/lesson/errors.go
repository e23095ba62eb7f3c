package lesson

import "fmt"

// ErrInvalidInput indicates bad caller input to the prompt builder.
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// ErrTransport indicates the LLM call itself failed (network, auth,
// rate limit). Surfaced from the provider layer, never generated here.
type ErrTransport struct {
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrParse indicates the raw model text contained no extractable,
// parseable JSON. Raw carries the offending text for display.
type ErrParse struct {
	Raw string
	Err error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("response is not parseable JSON: %v", e.Err)
}

func (e *ErrParse) Unwrap() error { return e.Err }

// ErrSchemaViolation indicates the response parsed as JSON but violates
// the lesson contract. Field names the specific missing or invalid
// field; Raw carries the offending text for display.
type ErrSchemaViolation struct {
	Field  string
	Reason string
	Raw    string
}

func (e *ErrSchemaViolation) Error() string {
	return fmt.Sprintf("schema violation at %q: %s", e.Field, e.Reason)
}
