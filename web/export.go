package web

import (
	"net/http"

	"github.com/chpollin/depcha-aldersbach/export"
)

// Export endpoints serialize the currently filtered view, so a download
// matches whatever table the user is looking at.

// handleExportJSON handles GET /api/export.json.
func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	criteria, ok := criteriaFromQuery(r)
	if !ok {
		http.Error(w, "invalid sort key", http.StatusBadRequest)
		return
	}

	payload := export.BuildPayload(s.store.ApplyFilter(criteria), criteria)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.json"`)
	if err := export.WriteJSON(w, payload); err != nil {
		s.log.Error().Err(err).Msg("json export failed")
	}
}

// handleExportCSV handles GET /api/export.csv.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	criteria, ok := criteriaFromQuery(r)
	if !ok {
		http.Error(w, "invalid sort key", http.StatusBadRequest)
		return
	}

	payload := export.BuildPayload(s.store.ApplyFilter(criteria), criteria)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := export.WriteCSV(w, payload); err != nil {
		s.log.Error().Err(err).Msg("csv export failed")
	}
}
