package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Histogram is an amount-distribution view: parallel labels and counts, one
// pair per bin.
type Histogram struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// AmountHistogram bins the positive amounts into bucketCount equal-width
// bins between the observed minimum and maximum. Bins are half-open
// [start, end), except the final bin which is closed so the maximum value is
// counted. Zero and negative amounts carry no distribution information for
// this material and are left out, as is an empty input, which yields an
// empty histogram rather than an error.
func AmountHistogram(amounts []decimal.Decimal, bucketCount int) Histogram {
	if bucketCount < 1 {
		return Histogram{}
	}

	var values []float64
	for _, a := range amounts {
		if a.IsPositive() {
			values = append(values, a.InexactFloat64())
		}
	}
	if len(values) == 0 {
		return Histogram{}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	width := (max - min) / float64(bucketCount)

	counts := make([]int, bucketCount)
	for _, v := range values {
		idx := bucketCount - 1
		if width > 0 {
			idx = int((v - min) / width)
			// The maximum lands exactly on the upper edge; fold it into the
			// closed final bin.
			if idx >= bucketCount {
				idx = bucketCount - 1
			}
		}
		counts[idx]++
	}

	labels := make([]string, bucketCount)
	for i := range labels {
		start := min + float64(i)*width
		end := start + width
		labels[i] = fmt.Sprintf("%.2f-%.2f", start, end)
	}

	return Histogram{Labels: labels, Counts: counts}
}
