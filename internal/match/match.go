// Package match evaluates postings against alert criteria. Evaluation is
// pure: it runs for every (posting, alert) pair in a cycle, so per-call cost
// stays linear in the criteria sizes and the posting's location is only
// normalized once (the location matcher memoizes by raw string).
package match

import (
	"fmt"
	"strings"

	"rushjob-engine/internal/domain"
	"rushjob-engine/internal/location"
)

// AlertError marks an alert whose configuration cannot be evaluated. The
// dispatcher skips the alert with a warning and keeps matching the rest.
type AlertError struct {
	AlertID string
	Reason  string
}

func (e *AlertError) Error() string {
	return fmt.Sprintf("alert %s unusable: %s", e.AlertID, e.Reason)
}

type Engine struct {
	Loc *location.Matcher
}

// Evaluate reports whether the posting satisfies every configured criterion
// of the alert. All rules are AND-ed; within the title keywords the mode
// decides between any-of (default) and all-of.
func (e *Engine) Evaluate(p domain.Posting, a domain.Alert) (bool, error) {
	if err := check(a); err != nil {
		return false, err
	}

	if !a.ScopedTo(p.OrgSlug) {
		return false, nil
	}

	title := strings.ToLower(p.Title)

	if kws := trimmed(a.TitleKeywords); len(kws) > 0 {
		if !matchesKeywords(title, kws, a.KeywordMode) {
			return false, nil
		}
	}
	for _, kw := range trimmed(a.ExcludeKeywords) {
		if strings.Contains(title, kw) {
			return false, nil
		}
	}

	if !e.Loc.Matches(p.LocationRaw, a.Locations) {
		return false, nil
	}

	if !fieldMatches(p.Department, a.Department) {
		return false, nil
	}
	if !fieldMatches(p.JobType, a.JobType) {
		return false, nil
	}

	return true, nil
}

func check(a domain.Alert) error {
	switch a.KeywordMode {
	case "", domain.KeywordAny, domain.KeywordAll:
	default:
		return &AlertError{AlertID: a.ID, Reason: fmt.Sprintf("unknown keyword mode %q", a.KeywordMode)}
	}
	if len(a.TitleKeywords) > 0 && len(trimmed(a.TitleKeywords)) == 0 {
		return &AlertError{AlertID: a.ID, Reason: "title keywords are all blank"}
	}
	return nil
}

func matchesKeywords(title string, kws []string, mode string) bool {
	if mode == domain.KeywordAll {
		for _, kw := range kws {
			if !strings.Contains(title, kw) {
				return false
			}
		}
		return true
	}
	for _, kw := range kws {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// fieldMatches applies exact case-insensitive equality when the filter is
// set. A posting missing the field fails a configured filter on it.
func fieldMatches(got, want string) bool {
	if strings.TrimSpace(want) == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
}

func trimmed(xs []string) []string {
	var out []string
	for _, x := range xs {
		x = strings.ToLower(strings.TrimSpace(x))
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}
