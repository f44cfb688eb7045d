package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcheplus/marcheplus-backend/api/responses"
	"github.com/marcheplus/marcheplus-backend/api/validators"
	"github.com/marcheplus/marcheplus-backend/internal/market"
	product "github.com/marcheplus/marcheplus-backend/internal/products"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
	"github.com/marcheplus/marcheplus-backend/pkg/i18n"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
	"github.com/marcheplus/marcheplus-backend/pkg/pagination"
)

type createProductBody struct {
	CategoryID  string           `json:"category_id" validate:"required,uuid"`
	Name        string           `json:"name" validate:"required,max=160"`
	Description string           `json:"description" validate:"max=2000"`
	Price       *decimal.Decimal `json:"price" validate:"required,decimal_gt0"`
	Unit        string           `json:"unit" validate:"max=40"`
	Image       *string          `json:"image,omitempty" validate:"omitempty,max=500"`
}

// ListProducts browses available products with optional category, supplier and search filters.
func ListProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseQueryUUID(r, "category")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		supplierID, err := validators.ParseQueryUUID(r, "supplier")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := product.ListFilters{
			CategoryID: categoryID,
			SupplierID: supplierID,
			Search:     validators.SanitizeString(r.URL.Query().Get("search"), 100),
		}
		list, err := svc.ListProducts(r.Context(), filters, pagination.Params{Limit: limit, Offset: offset})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListMyProducts returns every listing of the calling supplier.
func ListMyProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListMine(r.Context(), principal(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": rows})
	}
}

func CreateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createProductBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := uuid.Parse(body.CategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid id"))
			return
		}

		created, err := svc.CreateProduct(r.Context(), principal(r), product.CreateProductInput{
			CategoryID:  categoryID,
			Name:        body.Name,
			Description: strings.TrimSpace(body.Description),
			Price:       *body.Price,
			Unit:        body.Unit,
			Image:       body.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"product": created,
			"message": i18n.T(r.Context(), i18n.MsgProductCreated),
		})
	}
}

// GetProductDetail returns the product with its supplier's other listings and cheaper alternatives.
func GetProductDetail(svc market.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.ProductDetail(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func ListProductAlternatives(svc market.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.Alternatives(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"alternatives": rows})
	}
}

func ListSupplierOtherProducts(svc market.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.SupplierOtherProducts(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"supplier_products": rows})
	}
}
