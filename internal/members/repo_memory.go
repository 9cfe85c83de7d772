package members

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo stores members in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byEmail map[string]Member
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byEmail: make(map[string]Member)}
}

// FindByEmail returns the member with the given email.
func (r *MemoryRepo) FindByEmail(ctx context.Context, email string) (Member, error) {
	if err := ctx.Err(); err != nil {
		return Member{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return Member{}, ErrNotFound
	}
	return member, nil
}

// Create inserts a new member.
func (r *MemoryRepo) Create(ctx context.Context, member Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail[strings.ToLower(member.Email)] = member
	return nil
}
