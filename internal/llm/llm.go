package llm

import (
	"context"
	"errors"
	"time"
)

// Client abstracts one generative model endpoint.
type Client interface {
	// Generate submits a prompt (plus optional inline binary parts) and
	// returns the raw model text.
	Generate(ctx context.Context, req Request) (string, error)
	// Model reports the concrete model name, for logging and provenance.
	Model() string
}

// Request carries one model invocation's inputs.
type Request struct {
	Prompt string
	Parts  []Part
}

// Part is an inline binary attachment (e.g. a photo for a vision model).
type Part struct {
	MimeType string
	Data     []byte
}

// RetryableError marks rate-limit and transient-overload failures that are
// worth re-attempting against the same model. RetryAfter carries a
// server-supplied backoff hint when one was present.
type RetryableError struct {
	Status     int
	RetryAfter time.Duration
	Err        error
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// AsRetryable reports whether err is (or wraps) a RetryableError.
func AsRetryable(err error) (*RetryableError, bool) {
	var re *RetryableError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
