package web

import (
	"net/http"
	"strconv"

	"github.com/chpollin/depcha-aldersbach/analysis"
)

// RelatedEntry is the JSON shape of one scored candidate.
type RelatedEntry struct {
	Transaction TransactionResponse `json:"transaction"`
	Score       int                 `json:"score"`
}

// handleRelated handles GET /api/related?id=N&top=M, ranking the whole
// collection by relatedness to the given transaction.
func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	id, err := strconv.Atoi(q.Get("id"))
	if err != nil {
		http.Error(w, "invalid or missing transaction id", http.StatusBadRequest)
		return
	}

	target := s.store.Get(id)
	if target == nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	topN := 10
	if param := q.Get("top"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil || n < 1 {
			http.Error(w, "invalid top count: "+param, http.StatusBadRequest)
			return
		}
		topN = n
	}

	ranked := analysis.ScoreRelated(target, s.store.All(), topN)

	entries := make([]RelatedEntry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, RelatedEntry{
			Transaction: convertTransaction(r.Transaction, false),
			Score:       r.Score,
		})
	}
	writeJSON(w, map[string]any{"target": id, "related": entries})
}
