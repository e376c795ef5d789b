package controllers

import (
	"net/http"

	"github.com/yusufhadi/smartpos-backend/api/responses"
	"github.com/yusufhadi/smartpos-backend/pkg/config"
	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
	pkgredis "github.com/yusufhadi/smartpos-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SmartPOS-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. Redis is optional; when configured it must
// answer a ping before the service advertises itself as ready.
func HealthReady(cfg *config.Config, pinger pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SmartPOS-Env", cfg.App.Env)

		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
