package server

import (
	"net/http"
	"strconv"

	"github.com/at-ishikawa/wordbook/internal/statistics"
)

// Statistics handles GET /api/v1/stats with optional year and month filters.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	year, ok := intQuery(w, r, "year", 0, 9999)
	if !ok {
		return
	}
	month, ok := intQuery(w, r, "month", 0, 12)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, statistics.CalculateStatistics(h.words.Records(), h.idioms.Records(), year, month))
}

func intQuery(w http.ResponseWriter, r *http.Request, name string, lo, hi int) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}
