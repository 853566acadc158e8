package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStateTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CollectionRecord{}))
	return db
}

func TestGormRepositoryGetAbsentNamespace(t *testing.T) {
	repo := NewGormRepository(setupStateTestDB(t))

	payload, err := repo.Get(context.Background(), NamespaceCart)
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestGormRepositoryPutInsertsAndReplaces(t *testing.T) {
	repo := NewGormRepository(setupStateTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, NamespaceCart, []byte(`[{"id":1}]`)))

	payload, err := repo.Get(ctx, NamespaceCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(payload))

	require.NoError(t, repo.Put(ctx, NamespaceCart, []byte(`[{"id":1},{"id":2}]`)))

	payload, err = repo.Get(ctx, NamespaceCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(payload))

	var count int64
	require.NoError(t, repo.db.Model(&CollectionRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormRepositoryNamespacesAreIndependent(t *testing.T) {
	repo := NewGormRepository(setupStateTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, NamespaceCart, []byte(`[{"id":1}]`)))
	require.NoError(t, repo.Put(ctx, NamespaceWishlist, []byte(`[{"id":9}]`)))

	cart, err := repo.Get(ctx, NamespaceCart)
	require.NoError(t, err)
	wishlist, err := repo.Get(ctx, NamespaceWishlist)
	require.NoError(t, err)

	assert.JSONEq(t, `[{"id":1}]`, string(cart))
	assert.JSONEq(t, `[{"id":9}]`, string(wishlist))
}
