package llm

import (
	"errors"
	"fmt"
)

var (
	// no API key configured, raised before any network I/O
	ErrMissingCredential = errors.New("missing OpenRouter API key")
)

// distinguishes a failed HTTP exchange from one that never completed
type UpstreamKind string

const (
	UpstreamStatus      UpstreamKind = "status"
	UpstreamUnreachable UpstreamKind = "unreachable"
)

// terminal failure of the generation backend; never retried
type UpstreamError struct {
	Kind       UpstreamKind
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Kind == UpstreamUnreachable {
		return fmt.Sprintf("OpenRouter API unreachable: %v", e.Err)
	}

	if e.Body == "" {
		return fmt.Sprintf("OpenRouter API error: status %d", e.StatusCode)
	}

	return fmt.Sprintf("OpenRouter API error: status %d - %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
