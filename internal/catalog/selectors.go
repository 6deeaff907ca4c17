package catalog

import (
	"sync"

	"github.com/fairyhunter13/product-catalog-editor/internal/model"
)

// Selector derives a value from a snapshot.
type Selector[T any] func(*State) T

// Selectors is a set of memoized projections over State. Each field returns
// the previous result while its inputs are unchanged, so callers can compare
// results to skip work.
//
// A Selectors value may be shared between goroutines.
type Selectors struct {
	ShowProductCode Selector[bool]
	CurrentID       Selector[CurrentID]
	Products        Selector[[]model.Product]
	Error           Selector[string]
	// CurrentProduct reports no selection when nothing is selected or the
	// selected id is not in Products, and the blank template when the id is 0.
	CurrentProduct Selector[Selection]
}

// Selection is the product the edit page works on. Found is false when there
// is nothing to edit. Selections are values and compare with ==.
type Selection struct {
	Product model.Product
	Found   bool
}

// NewSelectors builds an independent set of memoized selectors.
func NewSelectors() *Selectors {
	sel := &Selectors{
		ShowProductCode: createSelector(func(s *State) bool { return s.ShowProductCode }),
		CurrentID:       createSelector(func(s *State) CurrentID { return s.CurrentProduct }),
		Products:        createSelector(func(s *State) []model.Product { return s.Products }),
		Error:           createSelector(func(s *State) string { return s.Error }),
	}
	sel.CurrentProduct = combineSelectors(sel.Products, sel.CurrentID, SameProducts, equal[CurrentID], findCurrent)
	return sel
}

// SameProducts reports whether a and b are the same list value: same length
// and same backing array.
func SameProducts(a, b []model.Product) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func findCurrent(products []model.Product, id CurrentID) Selection {
	if !id.Set {
		return Selection{}
	}
	if id.ID == 0 {
		return Selection{Product: model.BlankProduct(), Found: true}
	}
	for _, item := range products {
		if item.ID == id.ID {
			return Selection{Product: item, Found: true}
		}
	}
	return Selection{}
}

func equal[T comparable](a, b T) bool { return a == b }

// createSelector memoizes project on the last snapshot pointer it saw.
func createSelector[T any](project func(*State) T) Selector[T] {
	var (
		mu     sync.Mutex
		last   *State
		result T
	)
	return func(s *State) T {
		mu.Lock()
		defer mu.Unlock()
		if s == last && last != nil {
			return result
		}
		result = project(s)
		last = s
		return result
	}
}

// combineSelectors memoizes fn on the results of a and b, compared with eqA and eqB.
func combineSelectors[A, B, R any](a Selector[A], b Selector[B], eqA func(A, A) bool, eqB func(B, B) bool, fn func(A, B) R) Selector[R] {
	var (
		mu     sync.Mutex
		primed bool
		lastA  A
		lastB  B
		result R
	)
	return func(s *State) R {
		va, vb := a(s), b(s)
		mu.Lock()
		defer mu.Unlock()
		if primed && eqA(va, lastA) && eqB(vb, lastB) {
			return result
		}
		result = fn(va, vb)
		lastA, lastB, primed = va, vb, true
		return result
	}
}
