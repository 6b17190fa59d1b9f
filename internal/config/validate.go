package config

import (
	"fmt"
	"strings"

	"rushjob-engine/internal/domain"
)

// Defaults applied by NormalizeAndValidate when the yaml leaves a knob unset.
const (
	DefaultIntervalMinutes       = 15
	DefaultMaxConcurrent         = 5
	DefaultRatePerMinute         = 60
	DefaultRequestTimeoutSeconds = 30
	DefaultMaxRetries            = 3
	DefaultBackoffBaseSeconds    = 5
	DefaultBackoffCapSeconds     = 60
	DefaultPort                  = 8090
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults, trims lists, and checks that the
// organizations and alerts are usable. Errors make the config unusable;
// warnings are logged and startup continues.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	// ---- defaults ----
	if out.App.Port == 0 {
		out.App.Port = DefaultPort
	}
	if out.Polling.IntervalMinutes == 0 {
		out.Polling.IntervalMinutes = DefaultIntervalMinutes
	}
	if out.Polling.MaxConcurrent == 0 {
		out.Polling.MaxConcurrent = DefaultMaxConcurrent
	}
	if out.Polling.RatePerMinute == 0 {
		out.Polling.RatePerMinute = DefaultRatePerMinute
	}
	if out.Polling.RequestTimeoutSeconds == 0 {
		out.Polling.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if out.Polling.MaxRetries == 0 {
		out.Polling.MaxRetries = DefaultMaxRetries
	}
	if out.Polling.BackoffBaseSeconds == 0 {
		out.Polling.BackoffBaseSeconds = DefaultBackoffBaseSeconds
	}
	if out.Polling.BackoffCapSeconds == 0 {
		out.Polling.BackoffCapSeconds = DefaultBackoffCapSeconds
	}
	if out.Notify.DiscordUsername == "" {
		out.Notify.DiscordUsername = "RushJob"
	}

	// ---- polling sanity ----
	if out.Polling.IntervalMinutes < 0 {
		res.addErr("polling.interval_minutes must be > 0")
	} else if out.Polling.IntervalMinutes < 5 {
		res.addWarn("polling.interval_minutes is very low (%d) and may trip board rate limits.", out.Polling.IntervalMinutes)
	}
	if out.Polling.MaxConcurrent < 0 {
		res.addErr("polling.max_concurrent must be > 0")
	}
	if out.Polling.RatePerMinute < 0 {
		res.addErr("polling.rate_per_minute must be > 0")
	}
	if out.Polling.MaxRetries < 0 {
		res.addErr("polling.max_retries must be >= 0")
	}
	if out.Polling.BackoffCapSeconds < out.Polling.BackoffBaseSeconds {
		res.addWarn("polling.backoff_cap_seconds (%d) is below backoff_base_seconds (%d); the base wins.",
			out.Polling.BackoffCapSeconds, out.Polling.BackoffBaseSeconds)
	}

	// ---- organizations ----
	slugs := map[string]bool{}
	for i := range out.Organizations {
		o := &out.Organizations[i]
		o.Slug = strings.ToLower(strings.TrimSpace(o.Slug))
		if o.Slug == "" {
			res.addErr("organizations[%d]: slug is required", i)
			continue
		}
		if slugs[o.Slug] {
			res.addErr("organizations: duplicate slug %q", o.Slug)
		}
		slugs[o.Slug] = true
		if o.Name == "" {
			o.Name = o.Slug
		}
		if o.SourceType == "" {
			o.SourceType = "greenhouse"
		}
		switch o.SourceType {
		case "greenhouse", "lever", "board_html":
		default:
			res.addWarn("organizations[%d]: unknown source_type %q; polls will fail until a connector exists", i, o.SourceType)
		}
		if o.BoardToken == "" {
			o.BoardToken = o.Slug
		}
	}
	if len(out.Organizations) == 0 {
		res.addWarn("no organizations configured; the poller will idle.")
	}

	// ---- alerts ----
	ids := map[string]bool{}
	for i := range out.Alerts {
		a := &out.Alerts[i]
		if a.ID != "" {
			if ids[a.ID] {
				res.addErr("alerts: duplicate id %q", a.ID)
			}
			ids[a.ID] = true
		}
		a.Orgs = trimList(a.Orgs)
		a.TitleKeywords = trimList(a.TitleKeywords)
		a.ExcludeKeywords = trimList(a.ExcludeKeywords)
		a.Locations = trimList(a.Locations)

		switch a.KeywordMode {
		case "":
			a.KeywordMode = domain.KeywordAny
		case domain.KeywordAny, domain.KeywordAll:
		default:
			res.addErr("alerts[%d]: keyword_mode must be %q or %q, got %q", i, domain.KeywordAny, domain.KeywordAll, a.KeywordMode)
		}

		if len(a.TitleKeywords) == 0 && len(a.Locations) == 0 &&
			a.Department == "" && a.JobType == "" {
			res.addErr("alerts[%d]: at least one filter (keywords, locations, department, job_type) is required", i)
		}
		switch a.Endpoint.Kind {
		case "discord", "telegram":
			if strings.TrimSpace(a.Endpoint.Ref) == "" {
				res.addErr("alerts[%d]: endpoint.ref is required", i)
			}
		case "":
			res.addErr("alerts[%d]: endpoint.kind is required", i)
		default:
			res.addErr("alerts[%d]: unknown endpoint kind %q", i, a.Endpoint.Kind)
		}
		for _, slug := range a.Orgs {
			if !slugs[strings.ToLower(slug)] {
				res.addWarn("alerts[%d]: references unknown organization %q", i, slug)
			}
		}
	}
	if len(out.Alerts) == 0 {
		res.addWarn("no alerts configured; postings will be stored but nobody will be notified.")
	}

	return out, res
}
