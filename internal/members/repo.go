package members

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repos for missing members.
var ErrNotFound = errors.New("not found")

// Repo defines persistence operations for members.
type Repo interface {
	FindByEmail(ctx context.Context, email string) (Member, error)
	Create(ctx context.Context, member Member) error
}
