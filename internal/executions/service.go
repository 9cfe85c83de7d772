package executions

import (
	"context"
	"time"
)

// Service exposes execution tracking over a Repo.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// List returns the execution records for a plan year.
func (s *Service) List(ctx context.Context, orgID string, year int) ([]Record, error) {
	records, err := s.Repo.ListByOrgAndYear(ctx, orgID, year)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// MarkExecuted records that the activity was carried out by the given member.
func (s *Service) MarkExecuted(ctx context.Context, orgID, recordID, memberID string) (Record, error) {
	return s.Repo.SetExecuted(ctx, orgID, recordID, true, memberID, s.Now().UTC())
}

// UndoExecuted clears the executed state.
func (s *Service) UndoExecuted(ctx context.Context, orgID, recordID string) (Record, error) {
	return s.Repo.SetExecuted(ctx, orgID, recordID, false, "", time.Time{})
}
