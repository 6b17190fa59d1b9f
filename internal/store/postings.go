package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rushjob-engine/internal/domain"
)

type UpsertOutcome int

const (
	PostingUnchanged UpsertOutcome = iota
	PostingNew
	PostingChanged
)

// UpsertPosting inserts the posting keyed on (org, external id) or, when it
// already exists with a different fingerprint, rewrites it as the new
// effective version. The ON CONFLICT form keeps the write atomic even when
// another instance touches the same key.
func (d *DB) UpsertPosting(ctx context.Context, p domain.Posting) (UpsertOutcome, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	fp := p.Fingerprint()

	var prev string
	err := d.Pool.QueryRowContext(ctx,
		`SELECT fingerprint FROM postings WHERE org_slug = ? AND external_id = ?;`,
		p.OrgSlug, p.ExternalID,
	).Scan(&prev)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		prev = ""
	case err != nil:
		return PostingUnchanged, fmt.Errorf("lookup posting: %w", err)
	case prev == fp:
		_, err = d.Pool.ExecContext(ctx,
			`UPDATE postings SET last_seen = ? WHERE org_slug = ? AND external_id = ?;`,
			now, p.OrgSlug, p.ExternalID,
		)
		if err != nil {
			return PostingUnchanged, fmt.Errorf("touch posting: %w", err)
		}
		return PostingUnchanged, nil
	}

	_, err = d.Pool.ExecContext(ctx, `
INSERT INTO postings (org_slug, external_id, title, location, department,
                      job_type, url, fingerprint, first_seen, last_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(org_slug, external_id) DO UPDATE SET
  title = excluded.title,
  location = excluded.location,
  department = excluded.department,
  job_type = excluded.job_type,
  url = excluded.url,
  fingerprint = excluded.fingerprint,
  last_seen = excluded.last_seen;`,
		p.OrgSlug, p.ExternalID, p.Title, p.LocationRaw, p.Department,
		p.JobType, p.URL, fp, now, now,
	)
	if err != nil {
		return PostingUnchanged, fmt.Errorf("upsert posting: %w", err)
	}

	if prev == "" {
		return PostingNew, nil
	}
	return PostingChanged, nil
}

// ListRecentPostings returns up to limit postings, most recently seen first.
func (d *DB) ListRecentPostings(ctx context.Context, limit int) ([]domain.Posting, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT org_slug, external_id, title, location, department, job_type, url
FROM postings
ORDER BY last_seen DESC, org_slug, external_id
LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()

	var out []domain.Posting
	for rows.Next() {
		var p domain.Posting
		if err := rows.Scan(&p.OrgSlug, &p.ExternalID, &p.Title, &p.LocationRaw,
			&p.Department, &p.JobType, &p.URL); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
