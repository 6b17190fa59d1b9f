// Package greenhouse fetches postings from the public Greenhouse job board
// API (boards-api.greenhouse.io/v1/boards/<token>/jobs).
package greenhouse

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

const DefaultBaseURL = "https://boards-api.greenhouse.io/v1/boards"

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

func (c *Connector) Type() string { return "greenhouse" }

// Wire shape of the board API. Locations come both as a single object and
// as an office list; departments and metadata are nested arrays.
type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

type boardJob struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	AbsoluteURL string      `json:"absolute_url"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
	Offices []struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"offices"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
	Metadata []struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	} `json:"metadata"`
}

func (c *Connector) ListPostings(ctx context.Context, org domain.Organization) ([]domain.Posting, error) {
	url := fmt.Sprintf("%s/%s/jobs", c.BaseURL, org.BoardToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: err}
	}
	req.Header.Set("User-Agent", "RushJob/1.0")
	req.Header.Set("Accept", "application/json")

	res, err := c.HC.Do(req)
	if err != nil {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: fmt.Errorf("get board: %w", err)}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: fmt.Errorf("board status %d", res.StatusCode)}
	}

	var body boardResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: fmt.Errorf("decode board: %w", err)}
	}

	out := make([]domain.Posting, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		p := domain.Posting{
			ExternalID:  j.ID.String(),
			OrgSlug:     org.Slug,
			Title:       j.Title,
			LocationRaw: parseLocation(j),
			Department:  parseDepartment(j),
			JobType:     parseJobType(j),
			URL:         j.AbsoluteURL,
		}
		if p.ExternalID == "" || p.Title == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// parseLocation concatenates every location the board publishes into the
// single raw string the location matcher consumes.
func parseLocation(j boardJob) string {
	var parts []string
	seen := map[string]bool{}
	push := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			return
		}
		seen[strings.ToLower(s)] = true
		parts = append(parts, s)
	}

	push(j.Location.Name)
	for _, o := range j.Offices {
		push(o.Location)
		push(o.Name)
	}
	return strings.Join(parts, ", ")
}

func parseDepartment(j boardJob) string {
	if len(j.Departments) == 0 {
		return ""
	}
	return strings.TrimSpace(j.Departments[0].Name)
}

func parseJobType(j boardJob) string {
	for _, m := range j.Metadata {
		switch strings.ToLower(m.Name) {
		case "employment_type", "job_type":
			if v, ok := m.Value.(string); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}

	// boards without metadata: guess from the title
	title := strings.ToLower(j.Title)
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
