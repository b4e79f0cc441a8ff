package sales

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrStoreNotInitialized is returned by Default before Init has succeeded.
var ErrStoreNotInitialized = errors.New("sales: store not initialized")

// Store owns the derived dataset. It is read-only after construction and
// safe to share between goroutines.
type Store struct {
	rows       []Row
	months     []string
	categories []string
	sizes      []string
}

// NewStore builds a Store over already-derived rows. The slice is retained,
// so callers must not modify it afterwards.
func NewStore(rows []Row) *Store {
	s := &Store{rows: rows}

	monthSeen := make(map[int]string)
	var cats, sizes []string
	for _, r := range rows {
		monthSeen[r.OrderMonthNum] = r.OrderMonth
		cats = append(cats, r.PizzaCategory)
		sizes = append(sizes, r.PizzaSize)
	}
	for n := 1; n <= 12; n++ {
		if name, ok := monthSeen[n]; ok {
			s.months = append(s.months, name)
		}
	}
	s.categories = canonical(cats)
	s.sizes = canonical(sizes)
	return s
}

// Rows returns the derived rows. Callers must treat them as read-only.
func (s *Store) Rows() []Row { return s.rows }

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.rows) }

// FilterOptions are the choices a filter UI offers.
type FilterOptions struct {
	Months     []string `json:"months"` // AllMonths first, then calendar order
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
}

// FilterOptions lists the months present in calendar order (preceded by
// AllMonths) and the sorted distinct categories and sizes.
func (s *Store) FilterOptions() FilterOptions {
	return FilterOptions{
		Months:     append([]string{AllMonths}, s.months...),
		Categories: append([]string(nil), s.categories...),
		Sizes:      append([]string(nil), s.sizes...),
	}
}

// DefaultFilterState selects all months, categories and sizes.
func (s *Store) DefaultFilterState() FilterState {
	return FilterState{
		Months:     []string{AllMonths},
		Categories: append([]string(nil), s.categories...),
		Sizes:      append([]string(nil), s.sizes...),
	}
}

// ============================================================================
// PROCESS-WIDE HANDLE
// ============================================================================

var (
	defaultOnce  sync.Once
	defaultMu    sync.RWMutex
	defaultStore *Store
	defaultErr   error
)

// Init loads and derives the process-wide dataset exactly once. Later calls
// return the outcome of the first call without invoking load again.
func Init(load func() ([]RawRow, error)) error {
	defaultOnce.Do(func() {
		store, err := build(load)
		defaultMu.Lock()
		defaultStore, defaultErr = store, err
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultErr
}

func build(load func() ([]RawRow, error)) (*Store, error) {
	raw, err := load()
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	rows, err := Derive(raw)
	if err != nil {
		return nil, fmt.Errorf("derive dataset: %w", err)
	}
	return NewStore(rows), nil
}

// Default returns the Store built by Init. It is safe to call while Init
// runs on another goroutine; until Init finishes it reports
// ErrStoreNotInitialized.
func Default() (*Store, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultErr != nil {
		return nil, defaultErr
	}
	if defaultStore == nil {
		return nil, ErrStoreNotInitialized
	}
	return defaultStore, nil
}

// canonical returns the sorted distinct values of items.
func canonical(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}
