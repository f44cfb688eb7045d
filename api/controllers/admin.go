package controllers

import (
	"net/http"

	"github.com/marcheplus/marcheplus-backend/api/responses"
	"github.com/marcheplus/marcheplus-backend/internal/admin"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
)

func AdminDashboard(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dash, err := svc.Dashboard(r.Context(), principal(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dash)
	}
}

func AdminListUsers(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListUsers(r.Context(), principal(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"users": rows})
	}
}
