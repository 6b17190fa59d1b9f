package httpapi

import (
	"net/http"
	"sync/atomic"

	"rushjob-engine/internal/config"
)

type ConfigHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	writeJSON(w, cur)
}
