// Package catalog holds the product document store.
package catalog

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/sibabeauty/storefront/internal/model"
)

// ErrProductNotFound is returned when a product ID has no document.
var ErrProductNotFound = errors.New("product not found")

// Store is an in-memory product document store keyed by generated IDs.
type Store struct {
	mu    sync.RWMutex
	m     map[string]model.Product
	order []string
}

func New() *Store {
	return &Store{m: make(map[string]model.Product)}
}

// Get returns a copy of the product document.
func (s *Store) Get(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
}

// List returns all products in insertion order.
func (s *Store) List() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.m[id])
	}
	return out
}

// Create stores a new product under a generated ID unless the document
// already carries one.
func (s *Store) Create(p model.Product) model.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.m[p.ID] = p
	return p
}

// Update replaces an existing product document.
func (s *Store) Update(id string, p model.Product) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return model.Product{}, ErrProductNotFound
	}
	p.ID = id
	s.m[id] = p
	return p, nil
}

// Delete removes a product document.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.m, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of product documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Line is an id/quantity pair submitted by a cart or checkout request.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// Resolve builds cart items from request lines using the store's
// authoritative prices. Lines for the same product are merged so the
// cart stays unique by ID. Unknown IDs yield ErrProductNotFound.
func (s *Store) Resolve(lines []Line) ([]model.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.CartItem, 0, len(lines))
	seen := make(map[string]int, len(lines))
	for _, ln := range lines {
		if i, dup := seen[ln.ProductID]; dup {
			items[i].Quantity += ln.Quantity
			continue
		}
		p, ok := s.m[ln.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		seen[ln.ProductID] = len(items)
		items = append(items, model.CartItem{Product: p, Quantity: ln.Quantity})
	}
	return items, nil
}
