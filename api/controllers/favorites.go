package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/api/responses"
	"github.com/marcheplus/marcheplus-backend/api/validators"
	"github.com/marcheplus/marcheplus-backend/internal/favorites"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
	"github.com/marcheplus/marcheplus-backend/pkg/i18n"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
)

type favoriteBody struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

func ListFavorites(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context(), principal(r).UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"favorites": rows})
	}
}

// AddFavorite answers 201 on first add and 200 when the product was already favorited.
func AddFavorite(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := decodeFavoriteBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Add(r.Context(), principal(r).UserID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !result.Created {
			responses.WriteSuccess(w, map[string]any{
				"id":      result.ID,
				"message": i18n.T(r.Context(), i18n.MsgFavoriteExists),
			})
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"id":      result.ID,
			"message": i18n.T(r.Context(), i18n.MsgFavoriteAdded),
		})
	}
}

func RemoveFavorite(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := decodeFavoriteBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Remove(r.Context(), principal(r).UserID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": i18n.T(r.Context(), i18n.MsgFavoriteRemoved)})
	}
}

func decodeFavoriteBody(r *http.Request) (uuid.UUID, error) {
	var body favoriteBody
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(body.ProductID)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id")
	}
	return id, nil
}
