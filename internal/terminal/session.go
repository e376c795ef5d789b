package terminal

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yusufhadi/smartpos-backend/internal/cart"
	"github.com/yusufhadi/smartpos-backend/internal/receipt"
	"github.com/yusufhadi/smartpos-backend/internal/resolver"
	"github.com/yusufhadi/smartpos-backend/internal/workflow"
	"github.com/yusufhadi/smartpos-backend/pkg/enums"
	"github.com/yusufhadi/smartpos-backend/pkg/metrics"
)

// Session is one open till: a cart, its resolution workflow, and an activity
// timestamp for eviction. Sessions are independent of each other; nothing is
// shared between tills.
type Session struct {
	ID uuid.UUID

	cart     *cart.Store
	workflow *workflow.Controller
	metrics  *metrics.ResolutionMetrics

	taxRate  decimal.Decimal
	currency string

	mu         sync.Mutex
	lastActive time.Time
}

// Snapshot is the full presentation state for one till: the cart newest-first,
// display-rounded totals, and the workflow status.
type Snapshot struct {
	SessionID   uuid.UUID
	Items       []cart.LineItem
	ItemCount   int
	Receipt     receipt.Display
	Currency    string
	State       enums.WorkflowState
	PendingText string
	LastFailure *workflow.Failure
}

// Submit forwards a resolution query to the session workflow.
func (s *Session) Submit(query resolver.Query) error {
	s.touch()
	return s.workflow.Submit(query)
}

// RemoveItem deletes a line item by id, reporting whether anything changed.
func (s *Session) RemoveItem(id uuid.UUID) bool {
	s.touch()
	removed := s.cart.Remove(id)
	if removed {
		s.metrics.IncCartRemove()
	}
	return removed
}

// Checkout returns the final receipt and empties the cart. Payment itself is
// out of scope; this is purely the session boundary operation.
func (s *Session) Checkout() receipt.Display {
	s.touch()
	final := receipt.Compute(s.cart.Items(), s.taxRate).Display()
	s.cart.Clear()
	s.workflow.ClearFailure()
	return final
}

// Snapshot derives the presentation state. Totals are recomputed from the
// cart contents on every call; nothing is cached between mutations.
func (s *Session) Snapshot() Snapshot {
	s.touch()
	items := s.cart.Items()
	wf := s.workflow.Snapshot()
	return Snapshot{
		SessionID:   s.ID,
		Items:       items,
		ItemCount:   len(items),
		Receipt:     receipt.Compute(items, s.taxRate).Display(),
		Currency:    s.currency,
		State:       wf.State,
		PendingText: wf.PendingText,
		LastFailure: wf.LastFailure,
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
