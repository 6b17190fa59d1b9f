package domain

import "time"

// NotificationRecord is one row of the dedup ledger. At most one successful
// record ever exists per (AlertID, Fingerprint).
type NotificationRecord struct {
	AlertID     string
	Fingerprint string
	SentAt      time.Time
	Outcome     string // "sent" or "failed"
}
