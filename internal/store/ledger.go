package store

import (
	"context"
	"fmt"
	"time"

	"rushjob-engine/internal/domain"
)

// AlreadyNotified reports whether a successful send was ever recorded for
// (alert, fingerprint).
func (d *DB) AlreadyNotified(ctx context.Context, alertID, fingerprint string) (bool, error) {
	var one int
	err := d.Pool.QueryRowContext(ctx, `
SELECT COUNT(1) FROM notifications
WHERE alert_id = ? AND fingerprint = ? AND outcome = 'sent';`,
		alertID, fingerprint,
	).Scan(&one)
	if err != nil {
		return false, fmt.Errorf("ledger lookup: %w", err)
	}
	return one > 0, nil
}

// RecordSent writes the success row for (alert, fingerprint). The partial
// unique index makes the insert a no-op if a success already exists; the
// returned bool says whether this call won the write.
func (d *DB) RecordSent(ctx context.Context, alertID, fingerprint string) (bool, error) {
	_, err := d.Pool.ExecContext(ctx, `
INSERT OR IGNORE INTO notifications (alert_id, fingerprint, sent_at, outcome)
VALUES (?, ?, ?, 'sent');`,
		alertID, fingerprint, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("ledger write: %w", err)
	}

	// SQLite doesn't report IGNOREd rows reliably across drivers; ask it.
	var changes int
	if err := d.Pool.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err != nil {
		return false, fmt.Errorf("ledger changes: %w", err)
	}
	return changes > 0, nil
}

// RecordFailure appends an audit row for a failed delivery attempt. Failed
// rows never block a later success.
func (d *DB) RecordFailure(ctx context.Context, alertID, fingerprint string) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO notifications (alert_id, fingerprint, sent_at, outcome)
VALUES (?, ?, ?, 'failed');`,
		alertID, fingerprint, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("ledger failure write: %w", err)
	}
	return nil
}

// ListNotifications returns the full ledger for one alert, oldest first.
func (d *DB) ListNotifications(ctx context.Context, alertID string) ([]domain.NotificationRecord, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT alert_id, fingerprint, sent_at, outcome
FROM notifications
WHERE alert_id = ?
ORDER BY sent_at, outcome;`, alertID)
	if err != nil {
		return nil, fmt.Errorf("ledger list: %w", err)
	}
	defer rows.Close()

	var out []domain.NotificationRecord
	for rows.Next() {
		var r domain.NotificationRecord
		var sentAt string
		if err := rows.Scan(&r.AlertID, &r.Fingerprint, &sentAt, &r.Outcome); err != nil {
			return nil, err
		}
		r.SentAt, _ = time.Parse(time.RFC3339, sentAt)
		out = append(out, r)
	}
	return out, rows.Err()
}
