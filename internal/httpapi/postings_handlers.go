package httpapi

import (
	"net/http"
	"strconv"

	"rushjob-engine/internal/domain"
	"rushjob-engine/internal/store"
)

type PostingsHandler struct {
	Store *store.DB
}

func (h PostingsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 1000 {
			WriteError(w, r, http.StatusBadRequest, "bad_limit", "limit must be 1..1000")
			return
		}
		limit = n
	}

	postings, err := h.Store.ListRecentPostings(r.Context(), limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if postings == nil {
		postings = []domain.Posting{}
	}
	writeJSON(w, postings)
}
