package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/yusufhadi/smartpos-backend/internal/resolver"
	"github.com/yusufhadi/smartpos-backend/internal/terminal"
	"github.com/yusufhadi/smartpos-backend/pkg/config"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
)

type staticResolver struct{}

func (staticResolver) Resolve(ctx context.Context, q resolver.Query) (*resolver.ResolvedProduct, error) {
	return &resolver.ResolvedProduct{Name: "Organic Banana", Price: decimal.RequireFromString("7.25")}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	registry, err := terminal.NewRegistry(terminal.Params{
		Resolver:   staticResolver{},
		TaxRate:    decimal.RequireFromString("0.05"),
		Currency:   "AED",
		Timeout:    time.Second,
		SessionTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	t.Cleanup(registry.Shutdown)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Receipt.Currency = "AED"
	cfg.Terminal.MaxImageBytes = 1024

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	return NewRouter(cfg, logg, nil, registry)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		if env := rec.Header().Get("X-SmartPOS-Env"); env != "test" {
			t.Fatalf("%s: unexpected env header %q", path, env)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTerminalRoutesWired(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/terminal/sessions", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("open session: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	sid := envelope.Data.SessionID

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/terminal/sessions/"+sid+"/cart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("cart: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/terminal/sessions/"+sid+"/resolve", strings.NewReader(`{"text":"banana"}`)))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("resolve: expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/v1/terminal/sessions/"+sid, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d", rec.Code)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health/live", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("request id header should be set")
	}
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
