package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dpaiva/lojinha-backend/internal/app/model"
	"github.com/dpaiva/lojinha-backend/pkg/logger"
)

const (
	cartKeyPrefix = "lojinha:cart:"

	// cartPayloadVersion tags the persisted layout so a future format
	// change can migrate old carts on load instead of corrupting them.
	cartPayloadVersion = 1
)

type cartPayload struct {
	Version int              `json:"version"`
	Items   []model.CartItem `json:"items"`
}

// CartStore persists cart line items as a versioned JSON value under one
// key per cart. Persistence is best effort: every failure is logged and
// absorbed, never surfaced — a cart must always load in some valid
// (possibly empty) state.
type CartStore struct {
	kv  KV
	ttl time.Duration
}

func NewCartStore(kv KV, ttl time.Duration) *CartStore {
	return &CartStore{kv: kv, ttl: ttl}
}

func cartKey(cartID string) string {
	return cartKeyPrefix + cartID
}

// Save serializes and writes the full item list. Last write wins.
func (s *CartStore) Save(ctx context.Context, cartID string, items []model.CartItem) {
	payload := cartPayload{Version: cartPayloadVersion, Items: items}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to encode cart payload", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return
	}

	if err := s.kv.Set(ctx, cartKey(cartID), string(data), s.ttl); err != nil {
		logger.Error("Failed to persist cart", err, map[string]interface{}{
			"cart_id": cartID,
			"items":   len(items),
		})
		return
	}

	logger.Debug("Cart persisted", map[string]interface{}{
		"cart_id": cartID,
		"items":   len(items),
	})
}

// Load reads the persisted items for a cart. A missing key, a decode
// failure or an unknown payload version all yield an empty cart.
func (s *CartStore) Load(ctx context.Context, cartID string) []model.CartItem {
	value, err := s.kv.Get(ctx, cartKey(cartID))
	if err != nil {
		if err != ErrNotFound {
			logger.Warn("Failed to read persisted cart, treating as empty", map[string]interface{}{
				"cart_id": cartID,
				"error":   err.Error(),
			})
		}
		return []model.CartItem{}
	}

	var payload cartPayload
	if err := json.Unmarshal([]byte(value), &payload); err != nil {
		logger.Warn("Corrupt cart payload, treating as empty", map[string]interface{}{
			"cart_id": cartID,
			"error":   err.Error(),
		})
		return []model.CartItem{}
	}

	if payload.Version != cartPayloadVersion {
		logger.Warn("Unsupported cart payload version, treating as empty", map[string]interface{}{
			"cart_id": cartID,
			"version": payload.Version,
		})
		return []model.CartItem{}
	}

	if payload.Items == nil {
		return []model.CartItem{}
	}
	return payload.Items
}

// Clear removes the persisted cart. Failure is ignored beyond logging.
func (s *CartStore) Clear(ctx context.Context, cartID string) {
	if err := s.kv.Del(ctx, cartKey(cartID)); err != nil {
		logger.Warn("Failed to clear persisted cart", map[string]interface{}{
			"cart_id": cartID,
			"error":   fmt.Sprintf("%v", err),
		})
	}
}
