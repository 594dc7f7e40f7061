package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports an absent key.
var ErrNotFound = errors.New("key not found")

// KV is the minimal key-value surface cart persistence depends on. No
// transactional guarantees; last write wins.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
