package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yusufhadi/smartpos-backend/internal/cart"
	"github.com/yusufhadi/smartpos-backend/internal/resolver"
	"github.com/yusufhadi/smartpos-backend/pkg/enums"
	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
	"github.com/yusufhadi/smartpos-backend/pkg/metrics"
)

// ErrAlreadyInProgress is returned by Submit while a resolution is
// outstanding. It is a refusal, not a user-facing failure: the submission is
// dropped, never queued.
var ErrAlreadyInProgress = errors.New("a resolution is already in progress")

// Failure describes the most recent resolution failure for the status surface.
type Failure struct {
	Kind      enums.ResolutionFailure `json:"kind"`
	Message   string                  `json:"message"`
	Retryable bool                    `json:"retryable"`
}

// Snapshot is the controller state visible to the presentation layer.
type Snapshot struct {
	State       enums.WorkflowState
	PendingText string
	LastFailure *Failure
}

// Controller orchestrates one in-flight resolution per terminal session. Its
// Resolving state is the concurrency gate: at most one outstanding request,
// and a generation counter discards stale completions after Cancel or reset.
type Controller struct {
	mu           sync.Mutex
	state        enums.WorkflowState
	gen          uint64
	pendingText  string
	pendingImage []byte
	pendingMIME  string
	lastFailure  *Failure
	cancelFn     context.CancelFunc

	cart     *cart.Store
	resolver resolver.Resolver
	timeout  time.Duration
	metrics  *metrics.ResolutionMetrics
	logg     *logger.Logger
	onChange func(enums.WorkflowState)
}

// Params wires a controller to its collaborators.
type Params struct {
	Cart     *cart.Store
	Resolver resolver.Resolver
	Timeout  time.Duration
	Metrics  *metrics.ResolutionMetrics
	Logger   *logger.Logger
	// OnChange is invoked after every state transition, outside the
	// controller lock. Optional.
	OnChange func(enums.WorkflowState)
}

func NewController(p Params) (*Controller, error) {
	if p.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if p.Resolver == nil {
		return nil, fmt.Errorf("resolver required")
	}
	if p.Timeout <= 0 {
		p.Timeout = 20 * time.Second
	}
	return &Controller{
		state:    enums.WorkflowStateIdle,
		cart:     p.Cart,
		resolver: p.Resolver,
		timeout:  p.Timeout,
		metrics:  p.Metrics,
		logg:     p.Logger,
		onChange: p.OnChange,
	}, nil
}

// Submit starts an asynchronous resolution for the query. It returns
// ErrAlreadyInProgress while one is outstanding and a coded invalid-query
// error for empty input; both leave the controller untouched.
func (c *Controller) Submit(query resolver.Query) error {
	if query.Empty() {
		return pkgerrors.New(pkgerrors.CodeInvalidQuery, "a text query or product image is required")
	}

	c.mu.Lock()
	if c.state == enums.WorkflowStateResolving {
		c.mu.Unlock()
		c.metrics.IncRefused()
		return ErrAlreadyInProgress
	}

	c.state = enums.WorkflowStateResolving
	c.pendingText = query.Text
	c.pendingImage = query.Image
	c.pendingMIME = query.ImageMIME
	c.gen++
	gen := c.gen

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancelFn = cancel
	c.mu.Unlock()

	c.notify(enums.WorkflowStateResolving)
	go c.resolve(ctx, cancel, gen, query)
	return nil
}

func (c *Controller) resolve(ctx context.Context, cancel context.CancelFunc, gen uint64, query resolver.Query) {
	defer cancel()

	start := time.Now()
	product, err := c.resolver.Resolve(ctx, query)

	c.mu.Lock()
	if gen != c.gen {
		// The controller was cancelled or reset since this call went out.
		// Its result must not touch the cart.
		c.mu.Unlock()
		if c.logg != nil {
			c.logg.Debug(context.Background(), "workflow.stale_resolution_discarded")
		}
		return
	}
	c.cancelFn = nil
	c.state = enums.WorkflowStateIdle

	if err != nil {
		kind := failureKind(err)
		c.lastFailure = &Failure{
			Kind:      kind,
			Message:   failureMessage(err),
			Retryable: kind.Retryable(),
		}
		// Keep the operator's text for retry/edit, drop the image preview.
		c.pendingImage = nil
		c.pendingMIME = ""
		c.mu.Unlock()

		c.metrics.IncFailure(kind)
		c.metrics.ObserveDuration("failure", time.Since(start))
		if c.logg != nil {
			lctx := c.logg.WithField(context.Background(), "failure_kind", string(kind))
			c.logg.Warn(lctx, "workflow.resolution_failed")
		}
		c.notify(enums.WorkflowStateIdle)
		return
	}

	item := c.cart.Add(*product)
	c.lastFailure = nil
	c.pendingText = ""
	c.pendingImage = nil
	c.pendingMIME = ""
	c.mu.Unlock()

	c.metrics.IncSuccess()
	c.metrics.IncCartAdd()
	c.metrics.ObserveDuration("success", time.Since(start))
	if c.logg != nil {
		lctx := c.logg.WithItemID(context.Background(), item.ID.String())
		c.logg.Info(lctx, "workflow.item_added")
	}
	c.notify(enums.WorkflowStateIdle)
}

// Cancel abandons any outstanding resolution. The in-flight call's eventual
// result is discarded by the generation check.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.state != enums.WorkflowStateResolving {
		c.mu.Unlock()
		return
	}
	c.gen++
	if c.cancelFn != nil {
		c.cancelFn()
		c.cancelFn = nil
	}
	c.pendingImage = nil
	c.pendingMIME = ""
	c.state = enums.WorkflowStateIdle
	c.mu.Unlock()

	c.notify(enums.WorkflowStateIdle)
}

// ClearFailure drops the surfaced failure once the operator has seen it.
func (c *Controller) ClearFailure() {
	c.mu.Lock()
	c.lastFailure = nil
	c.mu.Unlock()
}

// Snapshot returns the controller state for the presentation layer.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:       c.state,
		PendingText: c.pendingText,
	}
	if c.lastFailure != nil {
		failure := *c.lastFailure
		snap.LastFailure = &failure
	}
	return snap
}

func (c *Controller) notify(state enums.WorkflowState) {
	if c.onChange != nil {
		c.onChange(state)
	}
}

func failureKind(err error) enums.ResolutionFailure {
	if typed := pkgerrors.As(err); typed != nil {
		if kind, ok := enums.FailureFromCode(typed.Code()); ok {
			return kind
		}
	}
	return enums.ResolutionFailureServiceUnavailable
}

func failureMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		return typed.Message()
	}
	return "resolution failed"
}
