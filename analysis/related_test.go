package analysis

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/chpollin/depcha-aldersbach/currency"
	"github.com/chpollin/depcha-aldersbach/transaction"
)

func TestScoreRelatedAdditiveScoring(t *testing.T) {
	// Same day (+2 +3) plus value ratio 0.82 (+2) gives 7.
	target := &transaction.Transaction{
		ID:        0,
		Date:      date(t, "1544-05-28"),
		BaseValue: decimal.NewFromInt(100),
	}
	candidate := &transaction.Transaction{
		ID:        1,
		Date:      date(t, "1544-05-28"),
		BaseValue: decimal.NewFromInt(82),
	}

	ranked := ScoreRelated(target, []*transaction.Transaction{target, candidate}, 10)

	assert.Equal(t, 1, len(ranked))
	assert.Equal(t, 7, ranked[0].Score)
}

func TestScoreRelatedDateProximity(t *testing.T) {
	target := &transaction.Transaction{ID: 0, Date: date(t, "1544-05-28")}

	tests := []struct {
		name string
		day  string
		want int
	}{
		{"SameDay", "1544-05-28", 5},
		{"NextDay", "1544-05-29", 5},
		{"WithinWeek", "1544-06-03", 2},
		{"BeyondWeek", "1544-06-10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := &transaction.Transaction{ID: 1, Date: date(t, tt.day)}
			ranked := ScoreRelated(target, []*transaction.Transaction{candidate}, 10)

			if tt.want == 0 {
				assert.Equal(t, 0, len(ranked), "zero-score candidates are excluded entirely")
				return
			}
			assert.Equal(t, 1, len(ranked))
			assert.Equal(t, tt.want, ranked[0].Score)
		})
	}
}

func TestScoreRelatedEntityBonuses(t *testing.T) {
	target := &transaction.Transaction{
		ID:          0,
		People:      []string{"Martin Öder von Aitenpach"},
		Places:      []string{"Aitenpach"},
		Commodities: []string{"waitz"},
	}

	t.Run("PersonFuzzyEitherDirection", func(t *testing.T) {
		candidate := &transaction.Transaction{ID: 1, People: []string{"martin öder"}}
		ranked := ScoreRelated(target, []*transaction.Transaction{candidate}, 10)
		assert.Equal(t, 1, len(ranked))
		assert.Equal(t, 3, ranked[0].Score)
	})

	t.Run("PlaceExactOnly", func(t *testing.T) {
		exact := &transaction.Transaction{ID: 1, Places: []string{"AITENPACH"}}
		prefix := &transaction.Transaction{ID: 2, Places: []string{"Aiten"}}
		ranked := ScoreRelated(target, []*transaction.Transaction{exact, prefix}, 10)
		assert.Equal(t, 1, len(ranked))
		assert.Equal(t, 2, ranked[0].Score)
		assert.Equal(t, 1, ranked[0].Transaction.ID)
	})

	t.Run("AllThreeBonusesAdd", func(t *testing.T) {
		candidate := &transaction.Transaction{
			ID:          1,
			People:      []string{"Martin"},
			Places:      []string{"aitenpach"},
			Commodities: []string{"waitz"},
		}
		ranked := ScoreRelated(target, []*transaction.Transaction{candidate}, 10)
		assert.Equal(t, 3+2+1, ranked[0].Score)
	})
}

func TestScoreRelatedCurrencyAndValue(t *testing.T) {
	target := &transaction.Transaction{
		ID:        0,
		BaseValue: decimal.NewFromInt(10),
		Amounts:   []transaction.Amount{{Quantity: decimal.NewFromInt(10), Currency: currency.Florin}},
	}

	t.Run("SharedCurrency", func(t *testing.T) {
		candidate := &transaction.Transaction{
			ID:      1,
			Amounts: []transaction.Amount{{Quantity: decimal.NewFromInt(3), Currency: currency.Florin}},
		}
		ranked := ScoreRelated(target, []*transaction.Transaction{candidate}, 10)
		assert.Equal(t, 1, ranked[0].Score)
	})

	t.Run("RatioAtThresholdDoesNotScore", func(t *testing.T) {
		candidate := &transaction.Transaction{ID: 1, BaseValue: decimal.NewFromInt(8)}
		ranked := ScoreRelated(target, []*transaction.Transaction{candidate}, 10)
		assert.Equal(t, 0, len(ranked), "ratio exactly 0.8 must not score")
	})

	t.Run("ZeroBaseValueNeverScoresValue", func(t *testing.T) {
		zeroTarget := &transaction.Transaction{ID: 0}
		candidate := &transaction.Transaction{ID: 1}
		ranked := ScoreRelated(zeroTarget, []*transaction.Transaction{candidate}, 10)
		assert.Equal(t, 0, len(ranked))
	})
}

func TestScoreRelatedOrderingAndTruncation(t *testing.T) {
	target := &transaction.Transaction{ID: 0, Date: date(t, "1544-05-28")}
	pool := []*transaction.Transaction{
		target,
		{ID: 1, Date: date(t, "1544-06-03")}, // +2
		{ID: 2, Date: date(t, "1544-05-28")}, // +5
		{ID: 3, Date: date(t, "1544-05-29")}, // +5, tied with 2
		{ID: 4, Date: date(t, "1600-01-01")}, // 0, excluded
	}

	ranked := ScoreRelated(target, pool, 10)

	assert.Equal(t, 3, len(ranked))
	// Descending by score, ties in pool order.
	assert.Equal(t, 2, ranked[0].Transaction.ID)
	assert.Equal(t, 3, ranked[1].Transaction.ID)
	assert.Equal(t, 1, ranked[2].Transaction.ID)

	for _, r := range ranked {
		assert.NotEqual(t, target.ID, r.Transaction.ID, "target must never rank in its own pool")
		assert.True(t, r.Score > 0)
	}

	truncated := ScoreRelated(target, pool, 2)
	assert.Equal(t, 2, len(truncated))
	assert.Equal(t, 2, truncated[0].Transaction.ID)
}
