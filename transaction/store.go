package transaction

import (
	"sort"
	"strings"
	"sync"

	"github.com/chpollin/depcha-aldersbach/currency"
)

// SortKey selects the ordering of a filtered view.
type SortKey string

const (
	// SortByDate orders by date descending, transactions without a date
	// last.
	SortByDate SortKey = "date"
	// SortByAmount orders by base value descending.
	SortByAmount SortKey = "amount"
	// SortByText orders by text, lexicographically ascending.
	SortByText SortKey = "text"
)

// ParseSortKey validates a sort key string, defaulting to date order.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortByDate, SortByAmount, SortByText:
		return SortKey(s), true
	case "":
		return SortByDate, true
	default:
		return SortByDate, false
	}
}

// FilterCriteria describes one filtered view. Criteria compose
// conjunctively, always in the same order: search, then currency, then sort.
type FilterCriteria struct {
	// SearchText matches case-insensitively against the text or any
	// extracted entity. Empty means no restriction.
	SearchText string

	// Currency keeps only transactions with at least one amount in the
	// given unit. Empty means no restriction.
	Currency currency.Code

	// SortKey selects the ordering; the zero value falls back to date
	// order.
	SortKey SortKey
}

// Store holds the full parsed collection. The collection is replaced
// wholesale on reload and never mutated incrementally, so concurrent
// readers either see the old complete collection or the new one, never a
// partial state.
type Store struct {
	mu           sync.RWMutex
	transactions []*Transaction
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new collection atomically.
func (s *Store) Replace(transactions []*Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = transactions
}

// Len returns the number of transactions held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}

// All returns the full collection as a new slice of references.
func (s *Store) All() []*Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Get returns the transaction with the given identifier, or nil.
func (s *Store) Get(id int) *Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// ApplyFilter produces a filtered, sorted view of the collection as a new
// slice. The underlying transactions are shared, never copied or mutated.
func (s *Store) ApplyFilter(criteria FilterCriteria) []*Transaction {
	view := s.All()

	if search := strings.ToLower(strings.TrimSpace(criteria.SearchText)); search != "" {
		view = filter(view, func(t *Transaction) bool {
			return matchesSearch(t, search)
		})
	}

	if criteria.Currency != "" {
		view = filter(view, func(t *Transaction) bool {
			return t.HasCurrency(criteria.Currency)
		})
	}

	sortView(view, criteria.SortKey)
	return view
}

func filter(transactions []*Transaction, keep func(*Transaction) bool) []*Transaction {
	out := transactions[:0]
	for _, t := range transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func matchesSearch(t *Transaction, search string) bool {
	if strings.Contains(strings.ToLower(t.Text), search) {
		return true
	}
	for _, entity := range t.Entities {
		if strings.Contains(strings.ToLower(entity), search) {
			return true
		}
	}
	return false
}

func sortView(view []*Transaction, key SortKey) {
	switch key {
	case SortByAmount:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].BaseValue.GreaterThan(view[j].BaseValue)
		})
	case SortByText:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Text < view[j].Text
		})
	default:
		// Date descending. An absent date acts as an explicit sentinel
		// sorting after every real date, rather than comparing nil times.
		sort.SliceStable(view, func(i, j int) bool {
			di, dj := view[i].Date, view[j].Date
			switch {
			case di.IsZero():
				return false
			case dj.IsZero():
				return true
			default:
				return di.After(dj.Time)
			}
		})
	}
}
