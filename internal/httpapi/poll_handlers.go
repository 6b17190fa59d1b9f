package httpapi

import (
	"log"
	"net/http"
	"sync/atomic"

	"rushjob-engine/internal/poll"
)

type PollHandler struct {
	Poller *poll.Poller

	running atomic.Bool
}

// Status reports the most recent completed cycle, or 404 before the first
// one finishes.
func (h *PollHandler) Status(w http.ResponseWriter, r *http.Request) {
	last := h.Poller.LastCycle()
	if last == nil {
		WriteError(w, r, http.StatusNotFound, "no_cycle", "no poll cycle has completed yet")
		return
	}
	writeJSON(w, map[string]any{
		"running": h.running.Load(),
		"last":    last,
	})
}

// Run triggers a cycle outside the schedule and blocks until it finishes,
// answering with the per-org outcomes. A cycle already started from this
// endpoint is not stacked; the caller gets told to wait.
func (h *PollHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.running.CompareAndSwap(false, true) {
		WriteJSON(w, http.StatusConflict, map[string]any{"ok": false, "msg": "already running"})
		return
	}
	defer h.running.Store(false)

	summary, err := h.Poller.PollOnce(r.Context())
	if err != nil {
		log.Printf("[httpapi] manual poll failed: %v", err)
		WriteError(w, r, http.StatusInternalServerError, "poll_failed", err.Error())
		return
	}
	writeJSON(w, summary)
}
