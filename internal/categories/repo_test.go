package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/marcheplus/marcheplus-backend/internal/testdb"
)

func TestServiceListsInSortOrder(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	fx.Category("Légumes", 3)
	cereals := fx.Category("Céréales", 1)
	fx.Category("Tubercules", 2)

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, cereals.ID, rows[0].ID)
	require.Equal(t, "Tubercules", rows[1].Name)
	require.Equal(t, "Légumes", rows[2].Name)

	ok, err := svc.Exists(context.Background(), cereals.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Exists(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestServiceListEmpty(t *testing.T) {
	svc, err := NewService(NewRepository(testdb.Open(t)))
	require.NoError(t, err)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}
