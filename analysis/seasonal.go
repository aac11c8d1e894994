package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chpollin/depcha-aldersbach/transaction"
)

// SeasonalAxis selects the calendar axis for a seasonal breakdown.
type SeasonalAxis string

const (
	AxisMonth   SeasonalAxis = "month"
	AxisQuarter SeasonalAxis = "quarter"
	AxisWeekday SeasonalAxis = "weekday"
)

// ParseSeasonalAxis validates an axis string, defaulting to month.
func ParseSeasonalAxis(s string) (SeasonalAxis, bool) {
	switch SeasonalAxis(s) {
	case AxisMonth, AxisQuarter, AxisWeekday:
		return SeasonalAxis(s), true
	case "":
		return AxisMonth, true
	default:
		return AxisMonth, false
	}
}

// SeasonalBreakdown is a fixed-cardinality view along a calendar axis:
// twelve months, four quarters, or seven weekdays starting Sunday. Every
// bucket is always present; buckets without transactions report count 0 and
// average 0. This differs from time-bucket aggregation, which is sparse.
type SeasonalBreakdown struct {
	Labels   []string          `json:"labels"`
	Averages []decimal.Decimal `json:"averages"`
	Counts   []int             `json:"counts"`
}

// Seasonal groups dated transactions along the given calendar axis and
// computes per-bucket count and mean base value. Transactions without a
// date are skipped.
func Seasonal(transactions []*transaction.Transaction, axis SeasonalAxis) SeasonalBreakdown {
	labels := seasonalLabels(axis)

	totals := make([]decimal.Decimal, len(labels))
	counts := make([]int, len(labels))

	for _, t := range transactions {
		if t.Date.IsZero() {
			continue
		}
		idx := seasonalIndex(t.Date.Time, axis)
		totals[idx] = totals[idx].Add(t.BaseValue)
		counts[idx]++
	}

	averages := make([]decimal.Decimal, len(labels))
	for i := range labels {
		if counts[i] > 0 {
			averages[i] = totals[i].Div(decimal.NewFromInt(int64(counts[i])))
		} else {
			averages[i] = decimal.Zero
		}
	}

	return SeasonalBreakdown{Labels: labels, Averages: averages, Counts: counts}
}

func seasonalLabels(axis SeasonalAxis) []string {
	switch axis {
	case AxisQuarter:
		return []string{"Q1", "Q2", "Q3", "Q4"}
	case AxisWeekday:
		labels := make([]string, 7)
		for i := range labels {
			labels[i] = time.Weekday(i).String()
		}
		return labels
	default:
		labels := make([]string, 12)
		for i := range labels {
			labels[i] = time.Month(i + 1).String()
		}
		return labels
	}
}

func seasonalIndex(t time.Time, axis SeasonalAxis) int {
	switch axis {
	case AxisQuarter:
		return (int(t.Month()) - 1) / 3
	case AxisWeekday:
		return int(t.Weekday())
	default:
		return int(t.Month()) - 1
	}
}
