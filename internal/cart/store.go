package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yusufhadi/smartpos-backend/internal/resolver"
)

// LineItem is one priced, quantified product entry in the cart. Items are
// immutable once created; the only mutation is removal.
type LineItem struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Quantity int
	Category string
	AddedAt  time.Time
}

// Store holds the line items for one terminal session. Mutations are
// serialized behind a mutex so receipt reads never observe a half-applied
// change.
type Store struct {
	mu    sync.Mutex
	items []LineItem
}

func NewStore() *Store {
	return &Store{}
}

// Add appends a new line item for the resolved product. Every add produces a
// distinct item with a fresh id and quantity 1; identical products are never
// merged. Validation happened upstream, so Add cannot fail.
func (s *Store) Add(product resolver.ResolvedProduct) LineItem {
	item := LineItem{
		ID:       uuid.New(),
		Name:     product.Name,
		Price:    product.Price,
		Quantity: 1,
		Category: product.Category,
		AddedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()

	return item
}

// Remove deletes the line item with the given id and reports whether anything
// was removed. Removing an absent id is a no-op returning false, so duplicate
// operator clicks stay harmless.
func (s *Store) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a newest-first snapshot of the cart. The slice and its
// elements are copies; callers cannot mutate store state through them.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]LineItem, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		snapshot = append(snapshot, s.items[i])
	}
	return snapshot
}

// Len returns the current number of line items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear empties the cart. Used only at checkout and session boundaries.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Subtotal sums price × quantity over all present items, recomputed from
// scratch on every call rather than patched incrementally.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range s.items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}
