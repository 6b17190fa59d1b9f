// Package board is a fallback connector for organizations whose Greenhouse
// board exposes no JSON API: it scrapes the public board page instead.
package board

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rushjob-engine/internal/ats"
	"rushjob-engine/internal/domain"
)

const DefaultBaseURL = "https://boards.greenhouse.io"

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

func (c *Connector) Type() string { return "board_html" }

func (c *Connector) ListPostings(ctx context.Context, org domain.Organization) ([]domain.Posting, error) {
	url := fmt.Sprintf("%s/%s", c.BaseURL, org.BoardToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: err}
	}
	req.Header.Set("User-Agent", "RushJob/1.0")

	res, err := c.HC.Do(req)
	if err != nil {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: fmt.Errorf("get board page: %w", err)}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: fmt.Errorf("board page status %d", res.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, &ats.SourceError{OrgSlug: org.Slug, Err: fmt.Errorf("parse board html: %w", err)}
	}

	seen := map[string]bool{}
	var out []domain.Posting

	// board pages list one .opening per job: an anchor to /<token>/jobs/<id>
	// plus a location span
	doc.Find("div.opening").Each(func(_ int, sel *goquery.Selection) {
		a := sel.Find("a[href]").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}

		id := extractJobID(href)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true

		abs := href
		if strings.HasPrefix(href, "/") {
			abs = c.BaseURL + href
		}

		out = append(out, domain.Posting{
			ExternalID:  id,
			OrgSlug:     org.Slug,
			Title:       cleanText(a.Text()),
			LocationRaw: cleanText(sel.Find(".location").First().Text()),
			Department:  cleanText(sel.Closest("section").Find("h3").First().Text()),
			URL:         abs,
		})
	})

	return out, nil
}

func extractJobID(href string) string {
	parts := strings.Split(href, "/jobs/")
	if len(parts) < 2 {
		return ""
	}
	id := ""
	for _, r := range parts[1] {
		if r < '0' || r > '9' {
			break
		}
		id += string(r)
	}
	return id
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
