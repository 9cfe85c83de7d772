package members

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// FindByEmail returns the member with the given email.
func (r *PGRepo) FindByEmail(ctx context.Context, email string) (Member, error) {
	const query = `
SELECT id, email, name, organization_id, role, created_at
FROM members
WHERE email = $1
LIMIT 1`
	var member Member
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&member.ID,
		&member.Email,
		&member.Name,
		&member.OrganizationID,
		&member.Role,
		&member.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Member{}, ErrNotFound
	}
	if err != nil {
		return Member{}, err
	}
	return member, nil
}

// Create inserts a new member.
func (r *PGRepo) Create(ctx context.Context, member Member) error {
	const query = `
INSERT INTO members (id, email, name, organization_id, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		member.ID,
		member.Email,
		member.Name,
		member.OrganizationID,
		member.Role,
		member.CreatedAt,
	)
	return err
}
