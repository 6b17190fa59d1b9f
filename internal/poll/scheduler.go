package poll

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Run drives the poll loop until ctx is cancelled: one cycle immediately,
// then one per configured interval. Shutdown lets the in-flight cycle
// finish (its fetches are bounded by their own timeouts) and stops issuing
// new ticks.
func (p *Poller) Run(ctx context.Context) error {
	c := cron.New()

	_, err := c.AddFunc(fmt.Sprintf("@every %s", p.Cfg.Interval), func() {
		p.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	c.Start()
	log.Printf("[poll] scheduler started, interval=%s concurrency=%d", p.Cfg.Interval, p.Cfg.MaxConcurrent)

	// populate immediately instead of waiting out the first interval
	go p.runCycle(ctx)

	<-ctx.Done()
	stop := c.Stop()
	<-stop.Done()
	log.Printf("[poll] scheduler stopped")
	return ctx.Err()
}

func (p *Poller) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	summary, err := p.PollOnce(ctx)
	if err != nil {
		log.Printf("[poll] cycle error: %v", err)
		return
	}
	log.Printf("[poll] cycle done: ok=%d failed=%d skipped=%d new=%d changed=%d sent=%d",
		summary.Succeeded, summary.Failed, summary.Skipped,
		summary.New, summary.Changed, summary.Notifications)
}
