package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yusufhadi/smartpos-backend/api/controllers"
	"github.com/yusufhadi/smartpos-backend/api/middleware"
	"github.com/yusufhadi/smartpos-backend/internal/terminal"
	"github.com/yusufhadi/smartpos-backend/pkg/config"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
	"github.com/yusufhadi/smartpos-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	registry *terminal.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readyPinger(redisClient), logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/terminal", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore(redisClient), cfg.Redis.IdempotencyTTL, logg))

		r.Post("/sessions", controllers.SessionOpen(registry, logg))
		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Delete("/", controllers.SessionClose(registry, logg))
			r.Get("/cart", controllers.CartSnapshot(registry, logg))
			r.Post("/resolve", controllers.ResolveSubmit(registry, cfg.Terminal.MaxImageBytes, logg))
			r.Delete("/cart/items/{itemId}", controllers.CartRemoveItem(registry, logg))
			r.Post("/checkout", controllers.Checkout(registry, cfg.Receipt.Currency, logg))
		})
	})

	return r
}

// A nil *redis.Client in a non-nil interface would dodge the nil checks in
// the handlers, so the conversions below keep nil nil.

func readyPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyStore(client *redis.Client) redis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
