package store

import (
	"context"
	"fmt"

	"rushjob-engine/internal/domain"
)

// SeedOrganizations inserts or refreshes the configured organizations.
// Config is the source of truth; reseeding overwrites every column.
func (d *DB) SeedOrganizations(ctx context.Context, orgs []domain.Organization) error {
	for _, o := range orgs {
		_, err := d.Pool.ExecContext(ctx, `
INSERT INTO organizations (slug, name, source_type, board_token, active)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
  name = excluded.name,
  source_type = excluded.source_type,
  board_token = excluded.board_token,
  active = excluded.active;`,
			o.Slug, o.Name, o.SourceType, o.BoardToken, o.Active,
		)
		if err != nil {
			return fmt.Errorf("seed org %s: %w", o.Slug, err)
		}
	}
	return nil
}

// ListActiveOrganizations returns active orgs in slug order; the poller
// relies on that order for deterministic queueing.
func (d *DB) ListActiveOrganizations(ctx context.Context) ([]domain.Organization, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT slug, name, source_type, board_token, active
FROM organizations
WHERE active = 1
ORDER BY slug;`)
	if err != nil {
		return nil, fmt.Errorf("list orgs: %w", err)
	}
	defer rows.Close()

	var out []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.Slug, &o.Name, &o.SourceType, &o.BoardToken, &o.Active); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
