package product

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/pkg/auth"
	"github.com/marcheplus/marcheplus-backend/pkg/db"
	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
	"github.com/marcheplus/marcheplus-backend/pkg/pagination"
)

// DefaultUnit is applied when a supplier omits the unit.
const DefaultUnit = "kg"

// Service exposes product browse and supplier listing operations.
type Service interface {
	ListProducts(ctx context.Context, filters ListFilters, params pagination.Params) (*ProductList, error)
	ListMine(ctx context.Context, principal auth.Principal) ([]ProductView, error)
	CreateProduct(ctx context.Context, principal auth.Principal, input CreateProductInput) (*ProductView, error)
}

type productStore interface {
	FindView(ctx context.Context, id uuid.UUID) (*ProductView, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	ListAvailable(ctx context.Context, filters ListFilters, params pagination.Params) ([]ProductView, error)
	CountAvailable(ctx context.Context, filters ListFilters) (int64, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]ProductView, error)
}

type categoryChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// StatsInvalidator is told when the available catalogue changes.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context)
}

// Options holds the optional collaborators of the service.
type Options struct {
	Stats StatsInvalidator
}

type service struct {
	repo       productStore
	categories categoryChecker
	stats      StatsInvalidator
	now        func() time.Time
}

// NewService wires the product service.
func NewService(repo productStore, categories categoryChecker, opts Options) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product repository required")
	}
	if categories == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "category checker required")
	}
	return &service{repo: repo, categories: categories, stats: opts.Stats, now: time.Now}, nil
}

func (s *service) ListProducts(ctx context.Context, filters ListFilters, params pagination.Params) (*ProductList, error) {
	rows, err := s.repo.ListAvailable(ctx, filters, params.Normalize())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	total, err := s.repo.CountAvailable(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	if rows == nil {
		rows = []ProductView{}
	}
	return &ProductList{Products: rows, Total: total}, nil
}

func (s *service) ListMine(ctx context.Context, principal auth.Principal) ([]ProductView, error) {
	if !principal.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if principal.Role != enums.RoleSupplier {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	rows, err := s.repo.ListBySupplier(ctx, principal.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list supplier products")
	}
	if rows == nil {
		rows = []ProductView{}
	}
	return rows, nil
}

// CreateProduct lists a new available product owned by the calling supplier.
func (s *service) CreateProduct(ctx context.Context, principal auth.Principal, input CreateProductInput) (*ProductView, error) {
	if !principal.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if principal.Role != enums.RoleSupplier {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only suppliers can create products")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"name": "is required"})
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "must be zero or greater"})
	}
	if !db.PriceColumn.Fits(input.Price) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "is too large"})
	}
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"category_id": "is required"})
	}

	exists, err := s.categories.Exists(ctx, input.CategoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check category")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category not found")
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = DefaultUnit
	}

	now := s.now().UTC()
	product := &models.Product{
		ID:          uuid.New(),
		SupplierID:  principal.UserID,
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price.Round(2),
		Unit:        unit,
		Image:       input.Image,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert product")
	}
	if s.stats != nil {
		s.stats.InvalidateStats(ctx)
	}

	view, err := s.repo.FindView(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
	}
	return view, nil
}
