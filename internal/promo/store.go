// Package promo holds the promotional-sale document store.
package promo

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sibabeauty/storefront/internal/model"
	"github.com/sibabeauty/storefront/internal/pricing"
)

var (
	ErrSaleNotFound = errors.New("sale not found")
	ErrInvalidSale  = errors.New("invalid sale")
)

// Store is an in-memory sale document store keyed by generated IDs.
type Store struct {
	mu    sync.RWMutex
	m     map[string]model.Sale
	order []string
}

func New() *Store {
	return &Store{m: make(map[string]model.Sale)}
}

// Validate checks a sale the way the admin console does before saving.
func Validate(s model.Sale) error {
	if s.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidSale)
	}
	switch s.Type {
	case model.SalePercent:
		if s.Percent <= 0 || s.Percent > 100 {
			return fmt.Errorf("%w: percent must be in (0, 100]", ErrInvalidSale)
		}
	case model.SaleFixed:
		if s.AmountCents <= 0 {
			return fmt.Errorf("%w: amount must be > 0", ErrInvalidSale)
		}
	case model.SaleCombo:
		if len(s.ComboDeals) == 0 {
			return fmt.Errorf("%w: combo sale needs at least one deal", ErrInvalidSale)
		}
		for _, d := range s.ComboDeals {
			if len(d.ProductIDs) < 2 {
				return fmt.Errorf("%w: combo deal needs at least two products", ErrInvalidSale)
			}
			if d.BundlePriceCents <= 0 {
				return fmt.Errorf("%w: bundle price must be > 0", ErrInvalidSale)
			}
		}
	default:
		return fmt.Errorf("%w: unknown sale type %q", ErrInvalidSale, s.Type)
	}
	if s.StartDate != nil && s.EndDate != nil && *s.EndDate < *s.StartDate {
		return fmt.Errorf("%w: end date before start date", ErrInvalidSale)
	}
	return nil
}

// Create validates and stores a new sale under a generated ID.
func (st *Store) Create(s model.Sale) (model.Sale, error) {
	if err := Validate(s); err != nil {
		return model.Sale{}, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().UnixMilli()
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, exists := st.m[s.ID]; !exists {
		st.order = append(st.order, s.ID)
	}
	st.m[s.ID] = s
	return s, nil
}

// Update validates and replaces an existing sale document.
func (st *Store) Update(id string, s model.Sale) (model.Sale, error) {
	if err := Validate(s); err != nil {
		return model.Sale{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	prev, ok := st.m[id]
	if !ok {
		return model.Sale{}, ErrSaleNotFound
	}
	s.ID = id
	s.CreatedAt = prev.CreatedAt
	st.m[id] = s
	return s, nil
}

// Delete removes a sale document.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.m[id]; !ok {
		return ErrSaleNotFound
	}
	delete(st.m, id)
	for i, oid := range st.order {
		if oid == id {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of the sale document.
func (st *Store) Get(id string) (model.Sale, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.m[id]
	return s, ok
}

// List returns all sales in creation order.
func (st *Store) List() []model.Sale {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]model.Sale, 0, len(st.order))
	for _, id := range st.order {
		out = append(out, st.m[id])
	}
	return out
}

// ActiveSaleAt returns the first sale (creation order) in effect at the
// given instant, or nil when none is. Callers pass the result explicitly
// into pricing; there is no implicit current sale.
func (st *Store) ActiveSaleAt(now time.Time) *model.Sale {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, id := range st.order {
		s := st.m[id]
		if pricing.IsSaleActiveAt(&s, now) {
			return &s
		}
	}
	return nil
}
