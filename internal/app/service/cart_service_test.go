package service

import (
	"context"
	"testing"
	"time"

	"github.com/dpaiva/lojinha-backend/internal/app/model"
	"github.com/dpaiva/lojinha-backend/internal/cart"
	"github.com/dpaiva/lojinha-backend/internal/catalog"
	"github.com/dpaiva/lojinha-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartServiceTest(t *testing.T) (CartService, *storage.CartStore) {
	t.Helper()

	feed := catalog.NewFeed([]model.Product{
		{ID: 1, Name: "Tênis Corrida", Price: 299.9},
		{ID: 2, Name: "Camiseta", Price: 59.9},
	})
	cartStore := storage.NewCartStore(storage.NewMemoryKV(), time.Hour)
	return NewCartService(cartStore, feed), cartStore
}

func TestCartService_GetCart_InitiallyEmpty(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)

	summary := cartService.GetCart(context.Background(), "cart-1")
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.TotalItems)
	assert.Equal(t, 0.0, summary.TotalPrice)
}

func TestCartService_AddToCart(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	summary, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].Quantity)
	assert.Equal(t, 299.9, summary.TotalPrice)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(context.Background(), "cart-1", 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddToCart_ExistingItemIncrements(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)
	summary, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)

	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Items[0].Quantity)
}

func TestCartService_PersistsAcrossCalls(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)
	_, err = cartService.AddToCart(ctx, "cart-1", 2)
	require.NoError(t, err)

	// A fresh read hydrates from storage.
	summary := cartService.GetCart(ctx, "cart-1")
	require.Len(t, summary.Items, 2)
	assert.Equal(t, 2, summary.TotalItems)
}

func TestCartService_CartsAreIndependent(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-a", 1)
	require.NoError(t, err)

	summary := cartService.GetCart(ctx, "cart-b")
	assert.Empty(t, summary.Items)
}

func TestCartService_SetQuantity(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)

	summary := cartService.SetQuantity(ctx, "cart-1", 1, 5)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 5, summary.Items[0].Quantity)
	assert.InDelta(t, 5*299.9, summary.TotalPrice, 1e-9)
}

func TestCartService_SetQuantity_ZeroRemoves(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)

	summary := cartService.SetQuantity(ctx, "cart-1", 1, 0)
	assert.Empty(t, summary.Items)

	// And the persisted state agrees.
	assert.Empty(t, cartService.GetCart(ctx, "cart-1").Items)
}

func TestCartService_SetQuantity_UnknownProductIsNoOp(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)

	summary := cartService.SetQuantity(ctx, "cart-1", 9999, 5)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].Quantity)
}

func TestCartService_SetQuantity_ClampsToMax(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)

	summary := cartService.SetQuantity(ctx, "cart-1", 1, 500)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, cart.MaxQuantity, summary.Items[0].Quantity)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)
	_, err = cartService.AddToCart(ctx, "cart-1", 2)
	require.NoError(t, err)

	summary := cartService.RemoveFromCart(ctx, "cart-1", 1)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, uint(2), summary.Items[0].Product.ID)
}

func TestCartService_RemoveFromCart_UnknownProductIsNoOp(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)

	summary := cartService.RemoveFromCart(ctx, "cart-1", 9999)
	assert.Len(t, summary.Items, 1)
}

func TestCartService_ClearCart_Idempotent(t *testing.T) {
	cartService, _ := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)

	summary := cartService.ClearCart(ctx, "cart-1")
	assert.Empty(t, summary.Items)

	summary = cartService.ClearCart(ctx, "cart-1")
	assert.Empty(t, summary.Items)
}

func TestCartService_HydratesFromCorruptStorageAsEmpty(t *testing.T) {
	feed := catalog.NewFeed([]model.Product{{ID: 1, Price: 10}})
	kv := storage.NewMemoryKV()
	cartStore := storage.NewCartStore(kv, time.Hour)
	cartService := NewCartService(cartStore, feed)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "lojinha:cart:cart-1", "garbage", 0))

	summary := cartService.GetCart(ctx, "cart-1")
	assert.Empty(t, summary.Items)

	// The cart keeps working after recovery.
	summary, err := cartService.AddToCart(ctx, "cart-1", 1)
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
}
