// internal/infrastructure/database/postgres/cart_repository_test.go
package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&cartItemRow{}))
	return db
}

func sampleCart() *cart.Cart {
	c := cart.New()
	c.Add(cart.CartItem{ProductID: 1, Color: "blue", Size: "M", Quantity: 2, UnitPrice: 8000, Name: "Classic Cotton Tee"})
	c.Add(cart.CartItem{ProductID: 2, Quantity: 1, UnitPrice: 1600, Name: "Stoneware Mug"})
	c.Add(cart.CartItem{ProductID: 1, Color: "blue", Size: "L", Quantity: 3, UnitPrice: 8000, Name: "Classic Cotton Tee"})
	return c
}

func TestCartRepositoryRoundTrip(t *testing.T) {
	repo := NewCartRepository(setupTestDB(t))
	ctx := context.Background()
	owner := "user:7"

	saved := sampleCart()
	require.NoError(t, repo.Save(ctx, owner, saved))

	loaded, err := repo.Load(ctx, owner)
	require.NoError(t, err)

	require.Len(t, loaded.Items, len(saved.Items))
	for i, want := range saved.Items {
		assert.Equal(t, want.Key(), loaded.Items[i].Key(), "insertion order must survive the round trip")
		assert.Equal(t, want.Quantity, loaded.Items[i].Quantity)
		assert.Equal(t, want.UnitPrice, loaded.Items[i].UnitPrice)
		assert.Equal(t, want.Name, loaded.Items[i].Name)
	}
	assert.Equal(t, saved.Subtotal(), loaded.Subtotal())
}

func TestCartRepositoryLoadMissingOwnerIsEmpty(t *testing.T) {
	repo := NewCartRepository(setupTestDB(t))

	c, err := repo.Load(context.Background(), "user:404")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartRepositorySaveReplacesPreviousRows(t *testing.T) {
	repo := NewCartRepository(setupTestDB(t))
	ctx := context.Background()
	owner := "user:7"

	require.NoError(t, repo.Save(ctx, owner, sampleCart()))

	// drop a line and reorder quantities, then save again
	c := sampleCart()
	require.True(t, c.Remove(cart.NewItemKey(2, "", "")))
	require.True(t, c.SetQuantity(cart.NewItemKey(1, "blue", "M"), 9))
	require.NoError(t, repo.Save(ctx, owner, c))

	loaded, err := repo.Load(ctx, owner)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, 9, loaded.Items[0].Quantity)
	assert.Equal(t, cart.NewItemKey(1, "blue", "L"), loaded.Items[1].Key())
}

func TestCartRepositorySaveEmptyCartClearsRows(t *testing.T) {
	repo := NewCartRepository(setupTestDB(t))
	ctx := context.Background()
	owner := "user:7"

	require.NoError(t, repo.Save(ctx, owner, sampleCart()))
	require.NoError(t, repo.Save(ctx, owner, cart.New()))

	loaded, err := repo.Load(ctx, owner)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestCartRepositoryDelete(t *testing.T) {
	repo := NewCartRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "user:7", sampleCart()))
	require.NoError(t, repo.Save(ctx, "user:8", sampleCart()))
	require.NoError(t, repo.Delete(ctx, "user:7"))

	gone, err := repo.Load(ctx, "user:7")
	require.NoError(t, err)
	assert.True(t, gone.IsEmpty())

	// other owners are untouched
	kept, err := repo.Load(ctx, "user:8")
	require.NoError(t, err)
	assert.Len(t, kept.Items, 3)
}

func TestCartRepositoryOwnersAreIsolated(t *testing.T) {
	repo := NewCartRepository(setupTestDB(t))
	ctx := context.Background()

	a := cart.New()
	a.Add(cart.CartItem{ProductID: 1, Quantity: 1, UnitPrice: 100})
	b := cart.New()
	b.Add(cart.CartItem{ProductID: 2, Quantity: 5, UnitPrice: 200})

	require.NoError(t, repo.Save(ctx, "user:1", a))
	require.NoError(t, repo.Save(ctx, "user:2", b))

	loaded, err := repo.Load(ctx, "user:1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, uint(1), loaded.Items[0].ProductID)
}
