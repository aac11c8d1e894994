package web

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/chpollin/depcha-aldersbach/analysis"
	"github.com/chpollin/depcha-aldersbach/currency"
)

// Aggregation endpoints operate on the same filtered view as the table, so
// a chart and the table it sits next to always agree. All of them accept
// the search/currency/sort parameters of /api/transactions plus their own
// axis parameter.

// handleTimeBuckets handles GET /api/aggregates/time?unit=day|week|month|year.
func (s *Server) handleTimeBuckets(w http.ResponseWriter, r *http.Request) {
	criteria, ok := criteriaFromQuery(r)
	if !ok {
		http.Error(w, "invalid sort key", http.StatusBadRequest)
		return
	}

	unit, ok := analysis.ParseTimeUnit(r.URL.Query().Get("unit"))
	if !ok {
		http.Error(w, "invalid time unit: "+r.URL.Query().Get("unit"), http.StatusBadRequest)
		return
	}

	buckets := analysis.ByTimeBucket(s.store.ApplyFilter(criteria), unit)
	writeJSON(w, map[string]any{"unit": unit, "buckets": buckets})
}

// handleCurrency handles GET /api/aggregates/currency?metric=value|count.
func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	criteria, ok := criteriaFromQuery(r)
	if !ok {
		http.Error(w, "invalid sort key", http.StatusBadRequest)
		return
	}

	metric, ok := analysis.ParseCurrencyMetric(r.URL.Query().Get("metric"))
	if !ok {
		http.Error(w, "invalid metric: "+r.URL.Query().Get("metric"), http.StatusBadRequest)
		return
	}

	tally := analysis.ByCurrency(s.store.ApplyFilter(criteria), metric)

	// Emit codes in the fixed unit order so chart legends are stable.
	type entry struct {
		Code  currency.Code   `json:"code"`
		Name  string          `json:"name"`
		Value decimal.Decimal `json:"value"`
	}
	entries := make([]entry, 0, len(tally))
	for _, code := range currency.Codes() {
		if value, present := tally[code]; present {
			entries = append(entries, entry{Code: code, Name: currency.Name(code), Value: value})
		}
	}
	writeJSON(w, map[string]any{"metric": metric, "currencies": entries})
}

// handleHistogram handles GET /api/aggregates/histogram?buckets=N, binning
// the filtered view's base values.
func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	criteria, ok := criteriaFromQuery(r)
	if !ok {
		http.Error(w, "invalid sort key", http.StatusBadRequest)
		return
	}

	bucketCount := 10
	if param := r.URL.Query().Get("buckets"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil || n < 1 {
			http.Error(w, "invalid bucket count: "+param, http.StatusBadRequest)
			return
		}
		bucketCount = n
	}

	view := s.store.ApplyFilter(criteria)
	values := make([]decimal.Decimal, 0, len(view))
	for _, t := range view {
		values = append(values, t.BaseValue)
	}

	writeJSON(w, analysis.AmountHistogram(values, bucketCount))
}

// handleSeasonal handles GET /api/aggregates/seasonal?axis=month|quarter|weekday.
func (s *Server) handleSeasonal(w http.ResponseWriter, r *http.Request) {
	criteria, ok := criteriaFromQuery(r)
	if !ok {
		http.Error(w, "invalid sort key", http.StatusBadRequest)
		return
	}

	axis, ok := analysis.ParseSeasonalAxis(r.URL.Query().Get("axis"))
	if !ok {
		http.Error(w, "invalid axis: "+r.URL.Query().Get("axis"), http.StatusBadRequest)
		return
	}

	writeJSON(w, analysis.Seasonal(s.store.ApplyFilter(criteria), axis))
}
