// Package ats defines the source adapter contract. A connector fetches the
// current posting list for one organization and maps it to the normalized
// shape; it never retries, matches or persists. That all lives upstream.
package ats

import (
	"context"
	"fmt"

	"rushjob-engine/internal/domain"
)

type Connector interface {
	Type() string
	ListPostings(ctx context.Context, org domain.Organization) ([]domain.Posting, error)
}

// SourceError wraps any fetch failure (timeout, bad status, bad payload)
// with the organization it came from. The scheduler treats it as transient.
type SourceError struct {
	OrgSlug string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.OrgSlug, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
