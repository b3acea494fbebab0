package sqlite

import (
	"context"
	"strings"
	"time"

	repo "skill-registry/internal/skill/repository"
)

// IsTrustedOrg reports whether name is on the trusted list. Case-insensitive.
func (r *implRepository) IsTrustedOrg(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM trusted_orgs WHERE name = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, strings.ToLower(name)).Scan(&exists); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("IsTrustedOrg"), err)
		return false, repo.ErrFailedToGet
	}
	return exists, nil
}

// AddTrustedOrg adds name to the trusted list; adding twice is a no-op.
func (r *implRepository) AddTrustedOrg(ctx context.Context, name string) error {
	const query = `INSERT INTO trusted_orgs (name, created_at) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, query, name, formatTime(time.Now())); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("AddTrustedOrg"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}
