package controllers

import (
	"net/http"

	"github.com/marcheplus/marcheplus-backend/api/responses"
	"github.com/marcheplus/marcheplus-backend/internal/categories"
	"github.com/marcheplus/marcheplus-backend/internal/market"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
)

// MarketStats returns per-category price aggregates over available products.
func MarketStats(svc market.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"stats": stats})
	}
}

func MarketSummaries(svc market.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.Summaries(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"summaries": rows})
	}
}

func ListCategories(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": rows})
	}
}
