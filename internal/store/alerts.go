package store

import (
	"context"
	"encoding/json"
	"fmt"

	"rushjob-engine/internal/domain"
)

func (d *DB) SeedAlerts(ctx context.Context, alerts []domain.Alert) error {
	for _, a := range alerts {
		orgs, _ := json.Marshal(emptyAsList(a.OrgSlugs))
		kws, _ := json.Marshal(emptyAsList(a.TitleKeywords))
		excl, _ := json.Marshal(emptyAsList(a.ExcludeKeywords))
		locs, _ := json.Marshal(emptyAsList(a.Locations))

		mode := a.KeywordMode
		if mode == "" {
			mode = domain.KeywordAny
		}

		_, err := d.Pool.ExecContext(ctx, `
INSERT INTO alerts (id, owner, org_slugs, title_keywords, exclude_keywords,
                    keyword_mode, locations, department, job_type,
                    endpoint_kind, endpoint_ref, active)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  owner = excluded.owner,
  org_slugs = excluded.org_slugs,
  title_keywords = excluded.title_keywords,
  exclude_keywords = excluded.exclude_keywords,
  keyword_mode = excluded.keyword_mode,
  locations = excluded.locations,
  department = excluded.department,
  job_type = excluded.job_type,
  endpoint_kind = excluded.endpoint_kind,
  endpoint_ref = excluded.endpoint_ref,
  active = excluded.active;`,
			a.ID, a.Owner, string(orgs), string(kws), string(excl),
			mode, string(locs), a.Department, a.JobType,
			a.Endpoint.Kind, a.Endpoint.Ref, a.Active,
		)
		if err != nil {
			return fmt.Errorf("seed alert %s: %w", a.ID, err)
		}
	}
	return nil
}

func (d *DB) ListActiveAlerts(ctx context.Context) ([]domain.Alert, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, owner, org_slugs, title_keywords, exclude_keywords, keyword_mode,
       locations, department, job_type, endpoint_kind, endpoint_ref, active
FROM alerts
WHERE active = 1
ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []domain.Alert
	for rows.Next() {
		var a domain.Alert
		var orgs, kws, excl, locs string
		if err := rows.Scan(&a.ID, &a.Owner, &orgs, &kws, &excl, &a.KeywordMode,
			&locs, &a.Department, &a.JobType, &a.Endpoint.Kind, &a.Endpoint.Ref, &a.Active); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(orgs), &a.OrgSlugs)
		_ = json.Unmarshal([]byte(kws), &a.TitleKeywords)
		_ = json.Unmarshal([]byte(excl), &a.ExcludeKeywords)
		_ = json.Unmarshal([]byte(locs), &a.Locations)
		out = append(out, a)
	}
	return out, rows.Err()
}

func emptyAsList(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
