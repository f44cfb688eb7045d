package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	product "github.com/marcheplus/marcheplus-backend/internal/products"
	"github.com/marcheplus/marcheplus-backend/internal/testdb"
	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
)

type stubProducts struct {
	err error
}

func (s stubProducts) FindByID(context.Context, uuid.UUID) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Product{}, nil
}

func TestAddIsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	ctx := context.Background()

	merchant := fx.User(enums.RoleMerchant, "Awa")
	supplier := fx.User(enums.RoleSupplier, "Koné")
	category := fx.Category("Céréales", 1)
	listing := fx.Product(supplier.ID, category.ID, "Riz local", 400)

	svc, err := NewService(NewRepository(db), product.NewRepository(db))
	require.NoError(t, err)

	first, err := svc.Add(ctx, merchant.ID, listing.ID)
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := svc.Add(ctx, merchant.ID, listing.ID)
	require.NoError(t, err)
	require.False(t, second.Created)
	require.Equal(t, first.ID, second.ID)

	items, err := svc.List(ctx, merchant.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, listing.ID, items[0].ProductID)
	require.Equal(t, "Céréales", items[0].CategoryName)
	require.Equal(t, "Koné", items[0].SupplierName)
}

func TestListNewestFirstAndScopedToUser(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	ctx := context.Background()

	awa := fx.User(enums.RoleMerchant, "Awa")
	ibrahim := fx.User(enums.RoleMerchant, "Ibrahim")
	supplier := fx.User(enums.RoleSupplier, "Koné")
	category := fx.Category("Céréales", 1)
	rice := fx.Product(supplier.ID, category.ID, "Riz", 400)
	maize := fx.Product(supplier.ID, category.ID, "Maïs", 250)

	repo := NewRepository(db)
	_, err := repo.Create(ctx, awa.ID, rice.ID, fx.Clock().Next())
	require.NoError(t, err)
	_, err = repo.Create(ctx, awa.ID, maize.ID, fx.Clock().Next())
	require.NoError(t, err)
	_, err = repo.Create(ctx, ibrahim.ID, rice.ID, fx.Clock().Next())
	require.NoError(t, err)

	items, err := repo.List(ctx, awa.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, maize.ID, items[0].ProductID)
	require.Equal(t, rice.ID, items[1].ProductID)
}

func TestRemoveMissingFavoriteSucceeds(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	ctx := context.Background()

	merchant := fx.User(enums.RoleMerchant, "Awa")
	supplier := fx.User(enums.RoleSupplier, "Koné")
	category := fx.Category("Céréales", 1)
	listing := fx.Product(supplier.ID, category.ID, "Riz", 400)

	svc, err := NewService(NewRepository(db), product.NewRepository(db))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, merchant.ID, listing.ID))
	_, err = svc.Add(ctx, merchant.ID, listing.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, merchant.ID, listing.ID))

	items, err := svc.List(ctx, merchant.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestAddUnknownProduct(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	merchant := fx.User(enums.RoleMerchant, "Awa")

	svc, err := NewService(NewRepository(db), product.NewRepository(db))
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), merchant.ID, uuid.New())
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
}

func TestAddValidation(t *testing.T) {
	db := testdb.Open(t)
	svc, err := NewService(NewRepository(db), stubProducts{})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), uuid.Nil, uuid.New())
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = svc.Add(context.Background(), uuid.New(), uuid.Nil)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestAddWrapsProductLookupFailure(t *testing.T) {
	db := testdb.Open(t)
	svc, err := NewService(NewRepository(db), stubProducts{err: errors.New("connection reset")})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), uuid.New(), uuid.New())
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
}
