package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/threadline/storefront/api/responses"
	"github.com/threadline/storefront/pkg/config"
	pkgerrors "github.com/threadline/storefront/pkg/errors"
	"github.com/threadline/storefront/pkg/logger"
)

const envHeader = "X-Threadline-Env"

// Dependency is one named backend checked by the readiness probe.
type Dependency struct {
	Name   string
	Pinger interface {
		Ping(ctx context.Context) error
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every wired dependency with a short deadline and fails
// the probe on the first unreachable one.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, dep := range deps {
			if dep.Pinger == nil {
				continue
			}
			if err := dep.Pinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency unreachable").
						WithDetails(map[string]any{"dependency": dep.Name}))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
