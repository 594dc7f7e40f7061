package service

import (
	"context"

	"github.com/dpaiva/lojinha-backend/internal/app/model"
	"github.com/dpaiva/lojinha-backend/internal/cart"
	"github.com/dpaiva/lojinha-backend/internal/catalog"
	"github.com/dpaiva/lojinha-backend/internal/storage"
	"github.com/dpaiva/lojinha-backend/pkg/logger"
)

// CartSummary is the derived view returned after every cart operation.
type CartSummary struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPrice float64          `json:"total_price"`
}

// CartService runs session-scoped carts. Each call hydrates a cart store
// from persisted state, applies the action through the reducer and writes
// the committed state back. Persistence failures never fail the request.
type CartService interface {
	GetCart(ctx context.Context, cartID string) CartSummary
	AddToCart(ctx context.Context, cartID string, productID uint) (CartSummary, error)
	SetQuantity(ctx context.Context, cartID string, productID uint, quantity int) CartSummary
	RemoveFromCart(ctx context.Context, cartID string, productID uint) CartSummary
	ClearCart(ctx context.Context, cartID string) CartSummary
}

type cartService struct {
	cartStore *storage.CartStore
	feed      *catalog.Feed
}

func NewCartService(cartStore *storage.CartStore, feed *catalog.Feed) CartService {
	return &cartService{cartStore: cartStore, feed: feed}
}

// open hydrates a store for the cart and wires write-through persistence:
// every committed state is re-serialized wholesale, and a cart that ends
// up empty drops its key instead of storing an empty payload.
func (s *cartService) open(ctx context.Context, cartID string) *cart.Store {
	store := cart.New()
	store.Hydrate(s.cartStore.Load(ctx, cartID))
	store.OnChange(func(items []model.CartItem) {
		if len(items) == 0 {
			s.cartStore.Clear(ctx, cartID)
			return
		}
		s.cartStore.Save(ctx, cartID, items)
	})
	return store
}

func summarize(store *cart.Store) CartSummary {
	return CartSummary{
		Items:      store.Items(),
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
	}
}

func (s *cartService) GetCart(ctx context.Context, cartID string) CartSummary {
	logger.Debug("Fetching cart", map[string]interface{}{
		"cart_id": cartID,
	})
	return summarize(s.open(ctx, cartID))
}

func (s *cartService) AddToCart(ctx context.Context, cartID string, productID uint) (CartSummary, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})

	product, ok := s.feed.Product(productID)
	if !ok {
		logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return CartSummary{}, ErrProductNotFound
	}

	store := s.open(ctx, cartID)
	store.Dispatch(cart.Add{Product: product})

	logger.Info("Item added to cart", map[string]interface{}{
		"cart_id":     cartID,
		"product_id":  productID,
		"total_items": store.TotalItems(),
	})
	return summarize(store), nil
}

// SetQuantity replaces a line's quantity. Zero or less removes the line;
// an unknown product id is a no-op. Neither case is an error by policy.
func (s *cartService) SetQuantity(ctx context.Context, cartID string, productID uint, quantity int) CartSummary {
	logger.Info("Setting cart item quantity", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	store := s.open(ctx, cartID)
	store.Dispatch(cart.SetQuantity{ProductID: productID, Quantity: quantity})
	return summarize(store)
}

func (s *cartService) RemoveFromCart(ctx context.Context, cartID string, productID uint) CartSummary {
	logger.Info("Removing cart item", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})

	store := s.open(ctx, cartID)
	store.Dispatch(cart.Remove{ProductID: productID})
	return summarize(store)
}

func (s *cartService) ClearCart(ctx context.Context, cartID string) CartSummary {
	logger.Info("Clearing cart", map[string]interface{}{
		"cart_id": cartID,
	})

	store := s.open(ctx, cartID)
	store.Dispatch(cart.Clear{})
	return summarize(store)
}
