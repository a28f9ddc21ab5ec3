package repository

import (
	"context"
	"errors"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// Custom error types
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrGeocoder         = errors.New("geocoder error")
	ErrAPIKeyMissing    = errors.New("API key missing")
	ErrExternalAPI      = errors.New("external API error")
)

// Cache is the subset of the Redis client the repositories use.
type Cache interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

// cacheOf avoids storing a typed nil client in the Cache interface.
func cacheOf(c *redisv9.Client) Cache {
	if c == nil {
		return nil
	}
	return c
}
