package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/marcheplus/marcheplus-backend/internal/categories"
	"github.com/marcheplus/marcheplus-backend/internal/testdb"
	"github.com/marcheplus/marcheplus-backend/pkg/auth"
	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
	"github.com/marcheplus/marcheplus-backend/pkg/pagination"
)

type stubStore struct {
	total      int64
	created    *models.Product
	createErr  error
	listFn     func(ctx context.Context, filters ListFilters, params pagination.Params) ([]ProductView, error)
	findViewFn func(ctx context.Context, id uuid.UUID) (*ProductView, error)
}

func (s *stubStore) FindView(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	if s.findViewFn != nil {
		return s.findViewFn(ctx, id)
	}
	return &ProductView{ID: id}, nil
}

func (s *stubStore) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = product
	return product, nil
}

func (s *stubStore) ListAvailable(ctx context.Context, filters ListFilters, params pagination.Params) ([]ProductView, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filters, params)
	}
	return nil, nil
}

func (s *stubStore) CountAvailable(ctx context.Context, filters ListFilters) (int64, error) {
	return s.total, nil
}

func (s *stubStore) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]ProductView, error) {
	return nil, nil
}

type stubCategories struct {
	exists bool
	err    error
}

func (s stubCategories) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists, s.err
}

type recordingStats struct {
	invalidations int
}

func (r *recordingStats) InvalidateStats(ctx context.Context) {
	r.invalidations++
}

func supplierPrincipal() auth.Principal {
	return auth.Principal{UserID: uuid.New(), Role: enums.RoleSupplier, Name: "Kouadio"}
}

func TestCreateProductDefaultsUnit(t *testing.T) {
	store := &stubStore{}
	svc, err := NewService(store, stubCategories{exists: true}, Options{})
	require.NoError(t, err)

	principal := supplierPrincipal()
	_, err = svc.CreateProduct(context.Background(), principal, CreateProductInput{
		CategoryID: uuid.New(),
		Name:       "  Riz parfumé ",
		Price:      decimal.RequireFromString("650.456"),
	})
	require.NoError(t, err)
	require.NotNil(t, store.created)
	require.Equal(t, DefaultUnit, store.created.Unit)
	require.Equal(t, "Riz parfumé", store.created.Name)
	require.Equal(t, principal.UserID, store.created.SupplierID)
	require.True(t, store.created.Available)
	require.Equal(t, "650.46", store.created.Price.StringFixed(2))
}

func TestCreateProductRejectsNonSuppliers(t *testing.T) {
	svc, err := NewService(&stubStore{}, stubCategories{exists: true}, Options{})
	require.NoError(t, err)

	merchant := auth.Principal{UserID: uuid.New(), Role: enums.RoleMerchant}
	_, err = svc.CreateProduct(context.Background(), merchant, CreateProductInput{CategoryID: uuid.New(), Name: "Riz"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = svc.CreateProduct(context.Background(), auth.Principal{}, CreateProductInput{CategoryID: uuid.New(), Name: "Riz"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestCreateProductValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateProductInput
		cats  stubCategories
	}{
		{"missing name", CreateProductInput{CategoryID: uuid.New(), Price: decimal.NewFromInt(1)}, stubCategories{exists: true}},
		{"negative price", CreateProductInput{CategoryID: uuid.New(), Name: "Riz", Price: decimal.NewFromInt(-1)}, stubCategories{exists: true}},
		{"missing category", CreateProductInput{Name: "Riz", Price: decimal.NewFromInt(1)}, stubCategories{exists: true}},
		{"unknown category", CreateProductInput{CategoryID: uuid.New(), Name: "Riz", Price: decimal.NewFromInt(1)}, stubCategories{exists: false}},
		{"price beyond numeric(14,2)", CreateProductInput{CategoryID: uuid.New(), Name: "Riz", Price: decimal.RequireFromString("1000000000000")}, stubCategories{exists: true}},
	}
	for _, tt := range tests {
		store := &stubStore{}
		svc, err := NewService(store, tt.cats, Options{})
		require.NoError(t, err)

		_, err = svc.CreateProduct(context.Background(), supplierPrincipal(), tt.input)
		require.Truef(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "%s: got %v", tt.name, err)
		require.Nilf(t, store.created, "%s: product should not be stored", tt.name)
	}
}

func TestCreateProductStorageFailure(t *testing.T) {
	svc, err := NewService(&stubStore{createErr: errors.New("insert failed")}, stubCategories{exists: true}, Options{})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), supplierPrincipal(), CreateProductInput{CategoryID: uuid.New(), Name: "Riz"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
}

func TestCreateProductInvalidatesMarketStats(t *testing.T) {
	stats := &recordingStats{}
	svc, err := NewService(&stubStore{}, stubCategories{exists: true}, Options{Stats: stats})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), supplierPrincipal(), CreateProductInput{CategoryID: uuid.New(), Name: "Riz", Price: decimal.NewFromInt(600)})
	require.NoError(t, err)
	require.Equal(t, 1, stats.invalidations)

	failing, err := NewService(&stubStore{createErr: errors.New("insert failed")}, stubCategories{exists: true}, Options{Stats: stats})
	require.NoError(t, err)
	_, err = failing.CreateProduct(context.Background(), supplierPrincipal(), CreateProductInput{CategoryID: uuid.New(), Name: "Riz", Price: decimal.NewFromInt(600)})
	require.Error(t, err)
	require.Equal(t, 1, stats.invalidations)
}

func TestCreateProductWrapsCategoryLookupFailure(t *testing.T) {
	store := &stubStore{}
	svc, err := NewService(store, stubCategories{err: errors.New("connection reset")}, Options{})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), supplierPrincipal(), CreateProductInput{CategoryID: uuid.New(), Name: "Riz", Price: decimal.NewFromInt(1)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
	require.Nil(t, store.created)
}

func TestListProductsNormalizesPagination(t *testing.T) {
	var got pagination.Params
	store := &stubStore{
		listFn: func(ctx context.Context, filters ListFilters, params pagination.Params) ([]ProductView, error) {
			got = params
			return nil, nil
		},
	}
	store.total = 7
	svc, err := NewService(store, stubCategories{}, Options{})
	require.NoError(t, err)

	list, err := svc.ListProducts(context.Background(), ListFilters{}, pagination.Params{Limit: 500, Offset: -3})
	require.NoError(t, err)
	require.NotNil(t, list.Products)
	require.EqualValues(t, 7, list.Total)
	require.Equal(t, pagination.MaxLimit, got.Limit)
	require.Zero(t, got.Offset)
}

func TestCreateProductAgainstSQLite(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	supplier := fx.User(enums.RoleSupplier, "Kouadio")
	category := fx.Category("Céréales", 1)

	svc, err := NewService(NewRepository(db), categories.NewRepository(db), Options{})
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }

	view, err := svc.CreateProduct(context.Background(),
		auth.Principal{UserID: supplier.ID, Role: enums.RoleSupplier, Name: supplier.Name},
		CreateProductInput{CategoryID: category.ID, Name: "Riz", Price: decimal.NewFromInt(500), Unit: "sac 50kg"})
	require.NoError(t, err)
	require.Equal(t, "sac 50kg", view.Unit)
	require.Equal(t, "Céréales", view.CategoryName)
	require.True(t, view.Available)
}
