package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yusufhadi/smartpos-backend/internal/cart"
	"github.com/yusufhadi/smartpos-backend/internal/resolver"
	"github.com/yusufhadi/smartpos-backend/internal/workflow"
	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
	"github.com/yusufhadi/smartpos-backend/pkg/metrics"
)

// Registry owns the open terminal sessions. Each Open creates an empty cart
// and an idle workflow; Close (or the idle janitor) cancels any outstanding
// resolution before the session is dropped.
type Registry struct {
	resolver   resolver.Resolver
	taxRate    decimal.Decimal
	currency   string
	timeout    time.Duration
	sessionTTL time.Duration
	metrics    *metrics.ResolutionMetrics
	logg       *logger.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	stopJanitor chan struct{}
	stopOnce    sync.Once
}

// Params wires the registry to its collaborators.
type Params struct {
	Resolver   resolver.Resolver
	TaxRate    decimal.Decimal
	Currency   string
	Timeout    time.Duration
	SessionTTL time.Duration
	Metrics    *metrics.ResolutionMetrics
	Logger     *logger.Logger
}

func NewRegistry(p Params) (*Registry, error) {
	if p.Resolver == nil {
		return nil, fmt.Errorf("resolver required")
	}
	if p.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must be non-negative")
	}
	if p.Currency == "" {
		return nil, fmt.Errorf("currency required")
	}
	if p.SessionTTL <= 0 {
		p.SessionTTL = 2 * time.Hour
	}
	return &Registry{
		resolver:    p.Resolver,
		taxRate:     p.TaxRate,
		currency:    p.Currency,
		timeout:     p.Timeout,
		sessionTTL:  p.SessionTTL,
		metrics:     p.Metrics,
		logg:        p.Logger,
		sessions:    map[uuid.UUID]*Session{},
		stopJanitor: make(chan struct{}),
	}, nil
}

// Open creates a new session with an empty cart and an idle workflow.
func (r *Registry) Open() (*Session, error) {
	store := cart.NewStore()
	controller, err := workflow.NewController(workflow.Params{
		Cart:     store,
		Resolver: r.resolver,
		Timeout:  r.timeout,
		Metrics:  r.metrics,
		Logger:   r.logg,
	})
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:         uuid.New(),
		cart:       store,
		workflow:   controller,
		metrics:    r.metrics,
		taxRate:    r.taxRate,
		currency:   r.currency,
		lastActive: time.Now(),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	count := len(r.sessions)
	r.mu.Unlock()

	if r.logg != nil {
		ctx := r.logg.WithFields(context.Background(), map[string]any{
			"session_id":    session.ID.String(),
			"open_sessions": count,
		})
		r.logg.Info(ctx, "terminal.session_opened")
	}
	return session, nil
}

// Get returns an open session or a coded not-found error.
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "terminal session not found")
	}
	return session, nil
}

// Close cancels any outstanding resolution and drops the session. Closing an
// unknown id is a no-op returning false.
func (r *Registry) Close(id uuid.UUID) bool {
	r.mu.Lock()
	session, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	session.workflow.Cancel()
	if r.logg != nil {
		ctx := r.logg.WithSessionID(context.Background(), id.String())
		r.logg.Info(ctx, "terminal.session_closed")
	}
	return true
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// StartJanitor evicts sessions idle beyond the TTL until Shutdown.
func (r *Registry) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.evictIdle()
			case <-r.stopJanitor:
				return
			}
		}
	}()
}

// Shutdown stops the janitor and closes every open session.
func (r *Registry) Shutdown() {
	r.stopOnce.Do(func() { close(r.stopJanitor) })

	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	r.sessions = map[uuid.UUID]*Session{}
	r.mu.Unlock()

	for _, session := range sessions {
		session.workflow.Cancel()
	}
}

func (r *Registry) evictIdle() {
	cutoff := time.Now().Add(-r.sessionTTL)

	r.mu.Lock()
	var expired []*Session
	for id, session := range r.sessions {
		if session.idleSince().Before(cutoff) {
			expired = append(expired, session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, session := range expired {
		session.workflow.Cancel()
		if r.logg != nil {
			ctx := r.logg.WithSessionID(context.Background(), session.ID.String())
			r.logg.Info(ctx, "terminal.session_evicted")
		}
	}
}
