// Package lever fetches postings from the public Lever postings API
// (api.lever.co/v0/postings/<token>?mode=json).
package lever

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rushjob-engine/internal/ats"
	"rushjob-engine/internal/domain"
)

const DefaultBaseURL = "https://api.lever.co/v0/postings"

type Connector struct {
	BaseURL string
	HC      *http.Client
}

func New() *Connector {
	return &Connector{
		BaseURL: DefaultBaseURL,
		HC:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Connector) Type() string { return "lever" }

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	Categories struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Commitment string `json:"commitment"` // "Full-time", "Intern", ...
	} `json:"categories"`
	WorkplaceType string `json:"workplaceType"` // "remote" | "hybrid" | "on-site"
}

func (c *Connector) ListPostings(ctx context.Context, org domain.Organization) ([]domain.Posting, error) {
	url := fmt.Sprintf("%s/%s?mode=json", c.BaseURL, org.BoardToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: err}
	}
	req.Header.Set("User-Agent", "RushJob/1.0")
	req.Header.Set("Accept", "application/json")

	res, err := c.HC.Do(req)
	if err != nil {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: fmt.Errorf("get postings: %w", err)}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: fmt.Errorf("postings status %d", res.StatusCode)}
	}

	var body []leverPosting
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: fmt.Errorf("decode postings: %w", err)}
	}

	out := make([]domain.Posting, 0, len(body))
	for _, lp := range body {
		p := domain.Posting{
			ExternalID:  lp.ID,
			OrgSlug:     org.Slug,
			Title:       strings.TrimSpace(lp.Text),
			LocationRaw: parseLocation(lp),
			Department:  strings.TrimSpace(lp.Categories.Team),
			JobType:     parseJobType(lp),
			URL:         lp.HostedURL,
		}
		if p.ExternalID == "" || p.Title == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// parseLocation merges the category location with the workplace type, so a
// hybrid/remote flag survives even when the location field is bare.
func parseLocation(lp leverPosting) string {
	loc := strings.TrimSpace(lp.Categories.Location)
	if strings.EqualFold(lp.WorkplaceType, "remote") &&
		!strings.Contains(strings.ToLower(loc), "remote") {
		if loc == "" {
			return "Remote"
		}
		return loc + ", Remote"
	}
	return loc
}

func parseJobType(lp leverPosting) string {
	if c := strings.TrimSpace(lp.Categories.Commitment); c != "" {
		return c
	}

	title := strings.ToLower(lp.Text)
	switch {
	case strings.Contains(title, "intern"):
		return "Intern"
	case strings.Contains(title, "contract"):
		return "Contract"
	case strings.Contains(title, "part-time") || strings.Contains(title, "part time"):
		return "Part-time"
	default:
		return "Full-time"
	}
}
