package executions

import "errors"

// ErrNotFound is returned by repos for missing records.
var ErrNotFound = errors.New("not found")
