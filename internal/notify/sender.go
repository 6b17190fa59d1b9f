// Package notify delivers match notifications to outbound endpoints. The
// pipeline treats every sender as at-least-once fire-and-report; the
// notification ledger upstream is what keeps user-visible sends unique.
package notify

import (
	"context"
	"fmt"
)

// Message is the structured payload a sender delivers.
type Message struct {
	AlertID    string
	Title      string
	OrgName    string
	Location   string
	Department string
	JobType    string
	URL        string
	Endpoint   string // endpoint reference from the alert
}

type Sender interface {
	Kind() string
	Send(ctx context.Context, msg Message) error
}

// SendError wraps a transient delivery failure; the dispatcher records no
// success and the match stays eligible for the next cycle.
type SendError struct {
	Kind string
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send via %s: %v", e.Kind, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }
