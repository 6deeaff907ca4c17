package catalog

import (
	"errors"

	"github.com/fairyhunter13/product-catalog-editor/internal/obs"
)

// ErrReentrantDispatch is returned by Dispatch when it is called while another
// dispatch is still notifying listeners or action observers.
var ErrReentrantDispatch = errors.New("catalog: dispatch called during dispatch")

// ErrNilAction is returned by Dispatch for a nil action.
var ErrNilAction = errors.New("catalog: nil action")

// Listener receives the new snapshot after a state-changing dispatch.
type Listener func(*State)

type listener struct {
	id uint64
	fn Listener
}

type observer struct {
	id uint64
	fn func(Action)
}

// Store holds the latest snapshot and serializes every transition through Reduce.
//
// A Store is owned by a single goroutine and is not safe for concurrent use.
// Work finishing elsewhere reports back by handing actions to the owner (see
// the effects package). Dispatching from inside a listener or observer is
// rejected with ErrReentrantDispatch.
type Store struct {
	state       *State
	listeners   []listener
	observers   []observer
	nextID      uint64
	dispatching bool
}

// NewStore creates a Store holding initial. A nil initial starts from Initial().
func NewStore(initial *State) *Store {
	if initial == nil {
		initial = Initial()
	}
	return &Store{state: initial}
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *State { return s.state }

// Dispatch reduces a into the held snapshot. Listeners are notified with the
// new snapshot when it changed; action observers are notified for every action.
func (s *Store) Dispatch(a Action) error {
	if a == nil {
		return ErrNilAction
	}
	if s.dispatching {
		obs.DispatchRejected.Inc()
		obs.Logger.Warn("dispatch_rejected", "action", a.Type())
		return ErrReentrantDispatch
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	prev := s.state
	s.state = Reduce(prev, a)
	obs.ActionsDispatched.WithLabelValues(a.Type()).Inc()
	obs.Logger.Debug("action_dispatched", "action", a.Type(), "changed", s.state != prev)

	if s.state != prev {
		for _, l := range s.listeners {
			l.fn(s.state)
		}
	}
	for _, o := range s.observers {
		o.fn(a)
	}
	return nil
}

// Subscribe registers fn for snapshot changes and returns a function removing it.
// Calling the returned function more than once is a no-op.
func (s *Store) Subscribe(fn Listener) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(cloneSlice(s.listeners), listener{id: id, fn: fn})
	return func() {
		s.listeners = removeByID(s.listeners, id, func(l listener) uint64 { return l.id })
	}
}

// ObserveActions registers fn for every dispatched action, after reduction and
// listener notification.
func (s *Store) ObserveActions(fn func(Action)) func() {
	s.nextID++
	id := s.nextID
	s.observers = append(cloneSlice(s.observers), observer{id: id, fn: fn})
	return func() {
		s.observers = removeByID(s.observers, id, func(o observer) uint64 { return o.id })
	}
}

// Select subscribes fn to one selector slice of st. fn runs once with the
// current value and then only when the selected value differs under equal.
func Select[T any](st *Store, sel Selector[T], equal func(a, b T) bool, fn func(T)) func() {
	last := sel(st.Snapshot())
	fn(last)
	return st.Subscribe(func(s *State) {
		v := sel(s)
		if equal(v, last) {
			return
		}
		last = v
		fn(v)
	})
}

// Listener and observer slices are replaced, never edited in place, so a
// notification loop keeps iterating the list it started with.
func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return out
}

func removeByID[T any](in []T, id uint64, key func(T) uint64) []T {
	out := make([]T, 0, len(in))
	for _, item := range in {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}
