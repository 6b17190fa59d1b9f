// Package poll orchestrates the periodic, rate-limited, bounded-concurrency
// fetch across all configured organizations and hands each organization's
// postings to the dispatcher. Failures are isolated per organization.
package poll

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"rushjob-engine/internal/ats"
	"rushjob-engine/internal/dispatch"
	"rushjob-engine/internal/domain"
	"rushjob-engine/internal/events"
)

type Config struct {
	Interval       time.Duration
	MaxConcurrent  int
	RatePerMinute  int
	RequestTimeout time.Duration
	MaxRetries     int
	BackoffBase    time.Duration
	BackoffCap     time.Duration
}

type Store interface {
	ListActiveOrganizations(ctx context.Context) ([]domain.Organization, error)
}

type Processor interface {
	Process(ctx context.Context, org domain.Organization, postings []domain.Posting) (dispatch.Result, error)
}

// Per-organization status within one cycle.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped" // previous fetch still in flight
)

type OrgOutcome struct {
	Slug          string `json:"slug"`
	Status        string `json:"status"`
	Attempts      int    `json:"attempts"`
	Found         int    `json:"found"`
	New           int    `json:"new"`
	Changed       int    `json:"changed"`
	Notifications int    `json:"notifications"`
	Error         string `json:"error,omitempty"`
}

type CycleSummary struct {
	StartedAt     time.Time    `json:"started_at"`
	CompletedAt   time.Time    `json:"completed_at"`
	Orgs          []OrgOutcome `json:"orgs"`
	Succeeded     int          `json:"succeeded"`
	Failed        int          `json:"failed"`
	Skipped       int          `json:"skipped"`
	New           int          `json:"new"`
	Changed       int          `json:"changed"`
	Notifications int          `json:"notifications"`
}

type Poller struct {
	Cfg        Config
	Store      Store
	Connectors map[string]ats.Connector // keyed by source type
	Dispatch   Processor
	Limiter    *SourceLimiter
	Hub        *events.Hub // optional

	// Sleep is the backoff wait; tests inject a recorder.
	Sleep func(ctx context.Context, d time.Duration) error

	mu       sync.Mutex
	inflight map[string]bool
	last     *CycleSummary
}

func New(cfg Config, st Store, connectors map[string]ats.Connector, d Processor, hub *events.Hub) *Poller {
	return &Poller{
		Cfg:        cfg,
		Store:      st,
		Connectors: connectors,
		Dispatch:   d,
		Limiter:    NewSourceLimiter(cfg.RatePerMinute),
		Hub:        hub,
		Sleep:      sleep,
		inflight:   make(map[string]bool),
	}
}

// PollOnce runs one full cycle: every active organization is fetched
// concurrently under the ceiling, in slug order, and processed sequentially
// within itself. The returned summary always covers every organization;
// PollOnce only fails when the organization list itself cannot be loaded.
func (p *Poller) PollOnce(ctx context.Context) (CycleSummary, error) {
	summary := CycleSummary{StartedAt: time.Now().UTC()}

	orgs, err := p.Store.ListActiveOrganizations(ctx)
	if err != nil {
		// record store down: no safe degraded mode, abort the cycle
		return summary, fmt.Errorf("list organizations: %w", err)
	}

	outcomes := make([]OrgOutcome, len(orgs))

	var g errgroup.Group
	if p.Cfg.MaxConcurrent > 0 {
		g.SetLimit(p.Cfg.MaxConcurrent)
	}

	for i, org := range orgs {
		i, org := i, org
		g.Go(func() error {
			outcomes[i] = p.pollOrg(ctx, org)
			return nil
		})
	}
	_ = g.Wait()

	summary.CompletedAt = time.Now().UTC()
	summary.Orgs = outcomes
	for _, o := range outcomes {
		switch o.Status {
		case StatusSucceeded:
			summary.Succeeded++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		}
		summary.New += o.New
		summary.Changed += o.Changed
		summary.Notifications += o.Notifications
	}

	p.mu.Lock()
	p.last = &summary
	p.mu.Unlock()

	if p.Hub != nil {
		p.Hub.Publish(events.Make(events.TypeCycleCompleted, "", summary))
	}
	return summary, nil
}

// LastCycle returns the most recent cycle summary, if any.
func (p *Poller) LastCycle() *CycleSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Poller) pollOrg(ctx context.Context, org domain.Organization) OrgOutcome {
	out := OrgOutcome{Slug: org.Slug}

	if !p.acquire(org.Slug) {
		log.Printf("[poll] %s: previous fetch still in flight, skipping this tick", org.Slug)
		out.Status = StatusSkipped
		return out
	}
	defer p.release(org.Slug)

	postings, attempts, err := p.fetchWithRetry(ctx, org)
	out.Attempts = attempts
	if err != nil {
		out.Status = StatusFailed
		out.Error = err.Error()
		log.Printf("[poll] %s: failed after %d attempt(s): %v", org.Slug, attempts, err)
		return out
	}
	out.Found = len(postings)

	res, err := p.Dispatch.Process(ctx, org, postings)
	out.New, out.Changed, out.Notifications = res.New, res.Changed, res.Notifications
	if err != nil {
		out.Status = StatusFailed
		out.Error = err.Error()
		log.Printf("[poll] %s: dispatch error: %v", org.Slug, err)
		return out
	}

	out.Status = StatusSucceeded
	log.Printf("[poll] %s: ok found=%d new=%d changed=%d sent=%d attempts=%d",
		org.Slug, out.Found, out.New, out.Changed, out.Notifications, out.Attempts)
	return out
}

// fetchWithRetry makes up to MaxRetries+1 attempts for one organization,
// each bounded by the request timeout, with capped exponential backoff in
// between. Cancellation abandons the in-flight attempt and skips the
// remaining retries.
func (p *Poller) fetchWithRetry(ctx context.Context, org domain.Organization) ([]domain.Posting, int, error) {
	conn, ok := p.Connectors[org.SourceType]
	if !ok {
		return nil, 0, fmt.Errorf("no connector for source type %q", org.SourceType)
	}

	bo := Backoff{Base: p.Cfg.BackoffBase, Cap: p.Cfg.BackoffCap}
	var lastErr error

	for attempt := 1; attempt <= p.Cfg.MaxRetries+1; attempt++ {
		if attempt > 1 {
			if err := p.Sleep(ctx, bo.Next()); err != nil {
				return nil, attempt - 1, err
			}
		}
		if err := p.Limiter.Wait(ctx, org.SourceType); err != nil {
			return nil, attempt, err
		}

		fctx := ctx
		cancel := func() {}
		if p.Cfg.RequestTimeout > 0 {
			fctx, cancel = context.WithTimeout(ctx, p.Cfg.RequestTimeout)
		}
		postings, err := conn.ListPostings(fctx, org)
		cancel()

		if err == nil {
			return postings, attempt, nil
		}
		lastErr = err
		log.Printf("[poll] %s: attempt %d/%d failed: %v", org.Slug, attempt, p.Cfg.MaxRetries+1, err)

		if ctx.Err() != nil {
			return nil, attempt, ctx.Err()
		}
	}
	return nil, p.Cfg.MaxRetries + 1, lastErr
}

func (p *Poller) acquire(slug string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inflight[slug] {
		return false
	}
	p.inflight[slug] = true
	return true
}

func (p *Poller) release(slug string) {
	p.mu.Lock()
	delete(p.inflight, slug)
	p.mu.Unlock()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
