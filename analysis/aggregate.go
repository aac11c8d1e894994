// Package analysis contains the pure analytical functions over transaction
// sequences: time-bucketed sums, currency tallies, amount histograms,
// seasonal breakdowns, and the relatedness scorer behind the detail view.
//
// Every function here is pure: it operates on the slice it is given, shares
// no state, and handles an empty input by returning empty or zero-valued
// results. Charting and serialization consume the plain structures these
// functions return.
package analysis

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/chpollin/depcha-aldersbach/currency"
	"github.com/chpollin/depcha-aldersbach/transaction"
)

// TimeUnit selects the bucket width for time aggregation.
type TimeUnit string

const (
	UnitDay   TimeUnit = "day"
	UnitWeek  TimeUnit = "week"
	UnitMonth TimeUnit = "month"
	UnitYear  TimeUnit = "year"
)

// ParseTimeUnit validates a time unit string, defaulting to month.
func ParseTimeUnit(s string) (TimeUnit, bool) {
	switch TimeUnit(s) {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return TimeUnit(s), true
	case "":
		return UnitMonth, true
	default:
		return UnitMonth, false
	}
}

// Bucket is one aggregation group: the transactions sharing a derived key.
type Bucket struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// ByTimeBucket groups dated transactions by the given unit and sums their
// base values. Transactions without a date are skipped. Buckets are emitted
// sorted ascending by key; gaps in the timeline produce no buckets, so the
// output is sparse and callers needing a dense series must backfill. Weeks
// start on Sunday.
func ByTimeBucket(transactions []*transaction.Transaction, unit TimeUnit) []Bucket {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)

	for _, t := range transactions {
		if t.Date.IsZero() {
			continue
		}
		key := bucketKey(t.Date.Time, unit)
		totals[key] = totals[key].Add(t.BaseValue)
		counts[key]++
	}

	keys := maps.Keys(totals)
	slices.Sort(keys)

	buckets := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, Bucket{Key: key, Total: totals[key], Count: counts[key]})
	}
	return buckets
}

// bucketKey truncates a date to its bucket boundary and formats it. The key
// formats sort chronologically as strings, which is what ByTimeBucket's
// ordering relies on.
func bucketKey(t time.Time, unit TimeUnit) string {
	switch unit {
	case UnitDay:
		return t.Format("2006-01-02")
	case UnitWeek:
		start := t.AddDate(0, 0, -int(t.Weekday()))
		return start.Format("2006-01-02")
	case UnitYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// CurrencyMetric selects what ByCurrency tallies per code.
type CurrencyMetric string

const (
	// MetricValue sums base-converted values.
	MetricValue CurrencyMetric = "value"
	// MetricCount counts amount occurrences.
	MetricCount CurrencyMetric = "count"
)

// ParseCurrencyMetric validates a metric string, defaulting to value.
func ParseCurrencyMetric(s string) (CurrencyMetric, bool) {
	switch CurrencyMetric(s) {
	case MetricValue, MetricCount:
		return CurrencyMetric(s), true
	case "":
		return MetricValue, true
	default:
		return MetricValue, false
	}
}

// ByCurrency tallies amounts per currency code over the known set: either
// the summed base-converted value of each amount, or its raw occurrence
// count. Codes absent from the input are absent from the result.
//
// Unknown codes cannot occur here by invariant, since amounts with unknown
// currency were excluded at parse time; if one does appear it indicates a
// broken invariant and is skipped rather than tallied, so a defect upstream
// cannot silently distort the distribution.
func ByCurrency(transactions []*transaction.Transaction, metric CurrencyMetric) map[currency.Code]decimal.Decimal {
	tally := make(map[currency.Code]decimal.Decimal)

	for _, t := range transactions {
		for _, a := range t.Amounts {
			if !currency.Known(a.Currency) {
				continue
			}
			switch metric {
			case MetricCount:
				tally[a.Currency] = tally[a.Currency].Add(decimal.NewFromInt(1))
			default:
				tally[a.Currency] = tally[a.Currency].Add(a.BaseValue())
			}
		}
	}

	return tally
}
