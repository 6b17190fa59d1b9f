package httpapi

import (
	"net/http"

	"rushjob-engine/internal/store"
)

type HealthHandler struct {
	Store *store.DB
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"ok": true}
	if h.Store != nil {
		if err := h.Store.Pool.PingContext(r.Context()); err != nil {
			resp["ok"] = false
			resp["db"] = err.Error()
			WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, resp)
}
