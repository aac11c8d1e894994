package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/chpollin/depcha-aldersbach/transaction"
)

// Relatedness scoring weights. The criteria are independent and additive;
// every threshold is a fixed constant of the heuristic:
//
//   - within 7 days of each other: +2
//   - within 1 day, additionally: +3 (same-day pairs score +5 from dates alone)
//   - base-value ratio above 0.8: +2
//   - at least one shared currency: +1
//   - a person token matching fuzzily: +3
//   - a place token matching exactly: +2
//   - a commodity matching exactly: +1
const (
	weekProximityScore = 2
	dayProximityScore  = 3
	valueScore         = 2
	currencyScore      = 1
	personScore        = 3
	placeScore         = 2
	commodityScore     = 1

	valueRatioThreshold = 0.8
	proximityWeekDays   = 7
)

// Related pairs a candidate transaction with its relatedness score.
type Related struct {
	Transaction *transaction.Transaction `json:"transaction"`
	Score       int                      `json:"score"`
}

// ScoreRelated ranks the pool by relatedness to the target. The target
// itself is always excluded, as is every candidate scoring zero. The result
// is sorted descending by score with ties kept in pool order, truncated to
// topN (non-positive topN means no truncation).
func ScoreRelated(target *transaction.Transaction, pool []*transaction.Transaction, topN int) []Related {
	var ranked []Related
	for _, candidate := range pool {
		if candidate == target || candidate.ID == target.ID {
			continue
		}
		if score := relatednessScore(target, candidate); score > 0 {
			ranked = append(ranked, Related{Transaction: candidate, Score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func relatednessScore(target, candidate *transaction.Transaction) int {
	score := 0

	if !target.Date.IsZero() && !candidate.Date.IsZero() {
		gap := target.Date.Sub(candidate.Date.Time)
		if gap < 0 {
			gap = -gap
		}
		if gap <= proximityWeekDays*24*time.Hour {
			score += weekProximityScore
			if gap <= 24*time.Hour {
				score += dayProximityScore
			}
		}
	}

	if !target.BaseValue.IsZero() && !candidate.BaseValue.IsZero() {
		smaller, larger := target.BaseValue, candidate.BaseValue
		if smaller.GreaterThan(larger) {
			smaller, larger = larger, smaller
		}
		if smaller.Div(larger).InexactFloat64() > valueRatioThreshold {
			score += valueScore
		}
	}

	if sharesCurrency(target, candidate) {
		score += currencyScore
	}

	if anyFuzzyMatch(target.People, candidate.People) {
		score += personScore
	}
	if anyExactMatch(target.Places, candidate.Places) {
		score += placeScore
	}
	if anyExactMatch(target.Commodities, candidate.Commodities) {
		score += commodityScore
	}

	return score
}

func sharesCurrency(a, b *transaction.Transaction) bool {
	for _, amount := range a.Amounts {
		if b.HasCurrency(amount.Currency) {
			return true
		}
	}
	return false
}

// anyFuzzyMatch reports whether any pair of tokens matches as a
// case-insensitive substring in either direction, which tolerates the
// scribes' habit of sometimes writing only a given name or only a surname.
func anyFuzzyMatch(a, b []string) bool {
	for _, x := range a {
		lx := strings.ToLower(x)
		for _, y := range b {
			ly := strings.ToLower(y)
			if strings.Contains(lx, ly) || strings.Contains(ly, lx) {
				return true
			}
		}
	}
	return false
}

func anyExactMatch(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				return true
			}
		}
	}
	return false
}
