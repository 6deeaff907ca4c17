// Package catalog holds the product editor's state kernel: the action catalog,
// the immutable State snapshot, the reducer, memoized selectors and the Store
// that serializes every transition through the reducer.
package catalog

import "github.com/fairyhunter13/product-catalog-editor/internal/model"

// CurrentID is the optional id of the selected product.
//
// The zero value means nothing is selected. Current(0) means a new product is
// being added.
type CurrentID struct {
	ID  int
	Set bool
}

// NoCurrent returns the unselected CurrentID.
func NoCurrent() CurrentID { return CurrentID{} }

// Current returns a CurrentID selecting id.
func Current(id int) CurrentID { return CurrentID{ID: id, Set: true} }

// State is one immutable snapshot of the editor.
//
// A *State handed out by the reducer or the Store must not be modified; the
// Products slice is shared between snapshots.
type State struct {
	ShowProductCode bool
	CurrentProduct  CurrentID
	Products        []model.Product
	Error           string
}

// Initial returns the snapshot a Store starts from when none is supplied.
func Initial() *State {
	return &State{
		ShowProductCode: true,
		CurrentProduct:  NoCurrent(),
		Products:        []model.Product{},
		Error:           "",
	}
}

func (s *State) with(fn func(*State)) *State {
	next := *s
	fn(&next)
	return &next
}
