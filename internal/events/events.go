package events

import (
	"encoding/json"
	"time"
)

// Event types published by the pipeline.
const (
	TypePostingCreated   = "posting_created"
	TypePostingChanged   = "posting_changed"
	TypeNotificationSent = "notification_sent"
	TypeCycleCompleted   = "cycle_completed"
)

type Event struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Org  string          `json:"org,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

func Make(typ, org string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type: typ,
		At:   time.Now().UTC(),
		Org:  org,
		Data: raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
