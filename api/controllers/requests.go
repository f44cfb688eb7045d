package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcheplus/marcheplus-backend/api/responses"
	"github.com/marcheplus/marcheplus-backend/api/validators"
	"github.com/marcheplus/marcheplus-backend/internal/requests"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
	"github.com/marcheplus/marcheplus-backend/pkg/i18n"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
)

type createPurchaseRequestBody struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty" validate:"omitempty,decimal_gt0"`
	Message   *string          `json:"message,omitempty" validate:"omitempty,max=500"`
}

type updatePurchaseRequestBody struct {
	Status string `json:"status" validate:"required"`
}

// CreatePurchaseRequest lets a merchant ask a supplier for a product.
func CreatePurchaseRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase request service unavailable"))
			return
		}

		var body createPurchaseRequestBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := uuid.Parse(body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid id"))
			return
		}

		created, err := svc.CreateRequest(r.Context(), principal(r), requests.CreateRequestInput{
			ProductID: productID,
			Quantity:  body.Quantity,
			Message:   body.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"id":      created.ID,
			"message": i18n.T(r.Context(), i18n.MsgRequestSent),
		})
	}
}

// ListPurchaseRequests returns the caller's requests, scoped by role.
func ListPurchaseRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListRequestsForUser(r.Context(), principal(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"requests": rows})
	}
}

// UpdatePurchaseRequestStatus moves a request to accepted, rejected or completed.
func UpdatePurchaseRequestStatus(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updatePurchaseRequestBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseRequestStatus(strings.ToLower(strings.TrimSpace(body.Status)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), principal(r), requestID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
