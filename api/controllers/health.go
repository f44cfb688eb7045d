package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/marcheplus/marcheplus-backend/api/responses"
	"github.com/marcheplus/marcheplus-backend/pkg/config"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
)

const readinessPingTimeout = 2 * time.Second

// Pinger is implemented by every dependency checked for readiness.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MarchePlus-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each named dependency and fails with 503 listing the ones that are down.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MarchePlus-Env", cfg.App.Env)

		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}
		sort.Strings(names)

		failed := map[string]string{}
		for _, name := range names {
			dep := deps[name]
			if dep == nil {
				continue
			}
			pingCtx, cancel := context.WithTimeout(r.Context(), readinessPingTimeout)
			err := dep.Ping(pingCtx)
			cancel()
			if err != nil {
				failed[name] = "unavailable"
				if logg != nil {
					logg.Error(logg.WithField(r.Context(), "dependency", name), "health.dependency_down", err)
				}
			}
		}
		if len(failed) > 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(failed))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
