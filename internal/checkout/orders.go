package checkout

import (
	"errors"
	"sync"
)

// ErrOrderNotFound is returned when an order ID has no document.
var ErrOrderNotFound = errors.New("order not found")

// Orders is an in-memory order document store.
type Orders struct {
	mu    sync.RWMutex
	m     map[string]Order
	order []string
}

func NewOrders() *Orders {
	return &Orders{m: make(map[string]Order)}
}

func (o *Orders) add(ord Order) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.m[ord.ID] = ord
	o.order = append(o.order, ord.ID)
}

// Get returns a copy of the order document.
func (o *Orders) Get(id string) (Order, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	ord, ok := o.m[id]
	return ord, ok
}

// List returns all orders in placement order.
func (o *Orders) List() []Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Order, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.m[id])
	}
	return out
}

// Count returns the number of placed orders.
func (o *Orders) Count() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.m)
}
