package analyses

import "errors"

var (
	// ErrNoFiles means the request carried no uploadable files at all.
	ErrNoFiles = errors.New("no files provided")
	// ErrInsufficientContent means the assembled corpus is too small to analyze.
	ErrInsufficientContent = errors.New("corpus below minimum analyzable length")
	// ErrUnreadableInput means every uploaded file degraded to a placeholder.
	ErrUnreadableInput = errors.New("no uploaded file could be read")
	// ErrNotFound is returned by repos for missing records.
	ErrNotFound = errors.New("not found")
)

const (
	ErrorCodeNoFiles             = "NO_FILES"
	ErrorCodeInsufficientContent = "INSUFFICIENT_CONTENT"
	ErrorCodeUnreadableInput     = "UNREADABLE_INPUT"
	ErrorCodeRateLimited         = "RATE_LIMITED"
	ErrorCodeModelUnavailable    = "MODEL_UNAVAILABLE"
	ErrorCodeInternal            = "INTERNAL_ERROR"
)
