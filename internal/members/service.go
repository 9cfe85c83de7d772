package members

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service resolves organization members during login.
type Service struct {
	Repo Repo
	// DefaultOrgID receives members who sign in without a prior invite.
	// Empty means unknown emails are rejected.
	DefaultOrgID string
	Now          func() time.Time
	NewID        func() string
}

// ErrNotInvited means the email belongs to no organization.
var ErrNotInvited = errors.New("email is not a member of any organization")

// NewService constructs a Service.
func NewService(repo Repo, defaultOrgID string) *Service {
	return &Service{
		Repo:         repo,
		DefaultOrgID: defaultOrgID,
		Now:          time.Now,
		NewID:        func() string { return uuid.NewString() },
	}
}

// EnsureMember returns the member for an authenticated email, provisioning
// one into the default organization when configured.
func (s *Service) EnsureMember(ctx context.Context, email, name string) (Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Member{}, ErrNotInvited
	}

	member, err := s.Repo.FindByEmail(ctx, email)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Member{}, err
	}
	if s.DefaultOrgID == "" {
		return Member{}, ErrNotInvited
	}

	member = Member{
		ID:             s.NewID(),
		Email:          email,
		Name:           name,
		OrganizationID: s.DefaultOrgID,
		Role:           "member",
		CreatedAt:      s.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, member); err != nil {
		return Member{}, err
	}
	return member, nil
}
