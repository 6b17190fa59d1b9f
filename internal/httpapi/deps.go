package httpapi

import (
	"sync/atomic"

	"rushjob-engine/internal/events"
	"rushjob-engine/internal/poll"
	"rushjob-engine/internal/store"
)

type Deps struct {
	Store *store.DB

	Hub *events.Hub

	// Atomic store; holds config.Config
	CfgVal *atomic.Value

	Poller *poll.Poller
}
