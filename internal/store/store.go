// Package store keeps the product service simulator's catalog in memory.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/fairyhunter13/product-catalog-editor/internal/model"
)

// ErrNotFound is returned when no product has the requested id.
var ErrNotFound = errors.New("product not found")

type Store struct {
	mu     sync.RWMutex
	m      map[int]model.Product
	lastID int
}

func New() *Store {
	return &Store{m: make(map[int]model.Product)}
}

// Seed returns a store holding the demo catalog.
func Seed() *Store {
	s := New()
	for _, p := range []model.Product{
		{ID: 1, ProductName: "Leaf Rake", ProductCode: "GDN-0011", Description: "Leaf rake with 48-inch wooden handle", StarRating: 3},
		{ID: 2, ProductName: "Garden Cart", ProductCode: "GDN-0023", Description: "15 gallon capacity rolling garden cart", StarRating: 4},
		{ID: 5, ProductName: "Hammer", ProductCode: "TBX-0048", Description: "Curved claw steel hammer", StarRating: 5},
		{ID: 8, ProductName: "Saw", ProductCode: "TBX-0022", Description: "15-inch steel blade hand saw", StarRating: 4},
		{ID: 10, ProductName: "Video Game Controller", ProductCode: "GMG-0042", Description: "Standard two-button video game controller", StarRating: 5},
	} {
		s.m[p.ID] = p
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
	}
	return s
}

// List returns all products ordered by id.
func (s *Store) List() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Get(id int) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
}

// Create stores p under the next free id and returns it.
func (s *Store) Create(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	p.ID = s.lastID
	s.m[p.ID] = p
	return p
}

// Update replaces the product with p's id.
func (s *Store) Update(p model.Product) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p.ID]; !ok {
		return model.Product{}, ErrNotFound
	}
	s.m[p.ID] = p
	return p, nil
}

func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return ErrNotFound
	}
	delete(s.m, id)
	return nil
}
