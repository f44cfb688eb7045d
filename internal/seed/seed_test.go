package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marcheplus/marcheplus-backend/internal/testdb"
	"github.com/marcheplus/marcheplus-backend/pkg/config"
	"github.com/marcheplus/marcheplus-backend/pkg/db"
	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	"github.com/marcheplus/marcheplus-backend/pkg/security"
)

var cheapArgon = config.PasswordConfig{
	ArgonMemoryKB:    64,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

func TestRunInsertsDemoData(t *testing.T) {
	gdb := testdb.Open(t)
	seeder := New(db.Wrap(gdb), "", cheapArgon, nil)

	result, err := seeder.Run(context.Background())
	require.NoError(t, err)
	require.False(t, result.Skipped)
	require.Equal(t, len(demoCategories), result.Categories)
	require.Equal(t, len(demoUsers), result.Users)
	require.Equal(t, len(demoProducts), result.Products)
	require.Equal(t, len(demoSummaries), result.Summaries)

	var unverified int64
	require.NoError(t, gdb.Model(&models.User{}).Where("verified = ?", false).Count(&unverified).Error)
	require.Zero(t, unverified)

	var admin models.User
	require.NoError(t, gdb.Where("role = ?", enums.RoleAdmin).First(&admin).Error)
	ok, err := security.VerifyPassword(DefaultPassword, admin.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)

	var general int64
	require.NoError(t, gdb.Model(&models.MarketSummary{}).Where("category_id IS NULL").Count(&general).Error)
	require.EqualValues(t, 1, general)
}

func TestRunSkipsWhenCatalogExists(t *testing.T) {
	gdb := testdb.Open(t)
	testdb.NewFixture(t, gdb).Category("Fruits", 1)

	result, err := New(db.Wrap(gdb), "", cheapArgon, nil).Run(context.Background())
	require.NoError(t, err)
	require.True(t, result.Skipped)

	var usersCount int64
	require.NoError(t, gdb.Model(&models.User{}).Count(&usersCount).Error)
	require.Zero(t, usersCount)
}
