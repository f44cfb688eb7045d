package notifications

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/marcheplus/marcheplus-backend/internal/testdb"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

func TestRepositoryListAndUnreadCount(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	user := fx.User(enums.RoleSupplier, "Kouadio")
	other := fx.User(enums.RoleSupplier, "Other")

	fx.Notification(user.ID, "old", true)
	fx.Notification(user.ID, "middle", false)
	newest := fx.Notification(user.ID, "newest", false)
	fx.Notification(other.ID, "not mine", false)

	repo := NewRepository(db)
	ctx := context.Background()

	rows, err := repo.ListForUser(ctx, user.ID, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, newest.ID, rows[0].ID)
	require.Equal(t, "middle", rows[1].Title)

	unread, err := repo.CountUnread(ctx, user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, unread)
}

func TestRepositoryMarkRead(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	user := fx.User(enums.RoleMerchant, "Awa")
	n := fx.Notification(user.ID, "hello", false)

	repo := NewRepository(db)
	ctx := context.Background()

	res, err := repo.MarkRead(ctx, user.ID, n.ID)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.True(t, res.Updated)

	res, err = repo.MarkRead(ctx, user.ID, n.ID)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.False(t, res.Updated)

	res, err = repo.MarkRead(ctx, uuid.New(), n.ID)
	require.NoError(t, err)
	require.False(t, res.Found)
}

func TestRepositoryMarkAllRead(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	user := fx.User(enums.RoleMerchant, "Awa")
	fx.Notification(user.ID, "a", false)
	fx.Notification(user.ID, "b", false)
	fx.Notification(user.ID, "c", true)

	repo := NewRepository(db)
	count, err := repo.MarkAllRead(context.Background(), user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	unread, err := repo.CountUnread(context.Background(), user.ID)
	require.NoError(t, err)
	require.Zero(t, unread)
}

func TestDispatcherPersistsThroughRepository(t *testing.T) {
	db := testdb.Open(t)
	fx := testdb.NewFixture(t, db)
	user := fx.User(enums.RoleSupplier, "Kouadio")

	repo := NewRepository(db)
	NewDispatcher(repo, nil, nil).Notify(context.Background(), user.ID, enums.NotificationTypeOrder, "Nouvelle demande d'achat", "Awa souhaite acheter 2 kg de Riz")

	rows, err := repo.ListForUser(context.Background(), user.ID, ListLimit)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, enums.NotificationTypeOrder, rows[0].Type)
	require.False(t, rows[0].Read)
}
