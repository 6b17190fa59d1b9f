// Package dispatch runs the dedup-and-notify step for the postings one poll
// cycle returned. Per-alert failures are isolated; only record-store errors
// abort the cycle, because dedup correctness depends on the ledger.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rushjob-engine/internal/domain"
	"rushjob-engine/internal/events"
	"rushjob-engine/internal/match"
	"rushjob-engine/internal/notify"
	"rushjob-engine/internal/store"
)

// Store is the slice of the record store the dispatcher needs. *store.DB
// implements it.
type Store interface {
	UpsertPosting(ctx context.Context, p domain.Posting) (store.UpsertOutcome, error)
	ListActiveAlerts(ctx context.Context) ([]domain.Alert, error)
	AlreadyNotified(ctx context.Context, alertID, fingerprint string) (bool, error)
	RecordSent(ctx context.Context, alertID, fingerprint string) (bool, error)
	RecordFailure(ctx context.Context, alertID, fingerprint string) error
}

type Result struct {
	New           int `json:"new"`
	Changed       int `json:"changed"`
	Notifications int `json:"notifications"`
}

type Dispatcher struct {
	Store   Store
	Match   *match.Engine
	Senders map[string]notify.Sender
	Hub     *events.Hub // optional
}

// Process upserts each posting, evaluates it against every active alert and
// sends at most one notification per (alert, fingerprint), ever. Postings
// are handled in adapter order; a send happens before its ledger write, so
// a crash between the two can at worst repeat one notification.
func (d *Dispatcher) Process(ctx context.Context, org domain.Organization, postings []domain.Posting) (Result, error) {
	var res Result

	alerts, err := d.Store.ListActiveAlerts(ctx)
	if err != nil {
		return res, fmt.Errorf("load alerts: %w", err)
	}

	for _, p := range postings {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		outcome, err := d.Store.UpsertPosting(ctx, p)
		if err != nil {
			return res, fmt.Errorf("upsert %s/%s: %w", p.OrgSlug, p.ExternalID, err)
		}

		switch outcome {
		case store.PostingNew:
			res.New++
			d.publish(events.TypePostingCreated, org.Slug)
		case store.PostingChanged:
			res.Changed++
			d.publish(events.TypePostingChanged, org.Slug)
		}

		sent, err := d.notifyAlerts(ctx, org, p, alerts)
		res.Notifications += sent
		if err != nil {
			return res, err
		}
	}

	return res, nil
}

func (d *Dispatcher) notifyAlerts(ctx context.Context, org domain.Organization, p domain.Posting, alerts []domain.Alert) (int, error) {
	fp := p.Fingerprint()
	sent := 0

	for _, a := range alerts {
		if !a.ScopedTo(org.Slug) {
			continue
		}

		ok, err := d.Match.Evaluate(p, a)
		if err != nil {
			// bad alert config: skip this alert, keep matching the rest
			var aerr *match.AlertError
			if errors.As(err, &aerr) {
				log.Printf("[dispatch] skipping alert %s: %v", a.ID, err)
				continue
			}
			return sent, err
		}
		if !ok {
			continue
		}

		already, err := d.Store.AlreadyNotified(ctx, a.ID, fp)
		if err != nil {
			return sent, fmt.Errorf("ledger check: %w", err)
		}
		if already {
			continue
		}

		sender, ok := d.Senders[a.Endpoint.Kind]
		if !ok {
			log.Printf("[dispatch] alert %s has no sender for endpoint kind %q", a.ID, a.Endpoint.Kind)
			continue
		}

		msg := notify.Message{
			AlertID:    a.ID,
			Title:      p.Title,
			OrgName:    org.Name,
			Location:   p.LocationRaw,
			Department: p.Department,
			JobType:    p.JobType,
			URL:        p.URL,
			Endpoint:   a.Endpoint.Ref,
		}
		if err := sender.Send(ctx, msg); err != nil {
			// transient: no success record, eligible again next cycle
			log.Printf("[dispatch] send failed alert=%s org=%s title=%q err=%v", a.ID, org.Slug, p.Title, err)
			if rerr := d.Store.RecordFailure(ctx, a.ID, fp); rerr != nil {
				return sent, rerr
			}
			continue
		}

		won, err := d.Store.RecordSent(ctx, a.ID, fp)
		if err != nil {
			return sent, fmt.Errorf("ledger write: %w", err)
		}
		if won {
			sent++
			d.publish(events.TypeNotificationSent, org.Slug)
		}
	}

	return sent, nil
}

func (d *Dispatcher) publish(typ, org string) {
	if d.Hub != nil {
		d.Hub.Publish(events.Make(typ, org, nil))
	}
}
