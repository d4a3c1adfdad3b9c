package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized calculation results. A ttl of zero
// means the entry never expires.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
}
