package redis

import (
	"sync"

	"github.com/fakhrymubarak/weather-report/internal/config"
	redisv9 "github.com/redis/go-redis/v9"
)

var (
	client *redisv9.Client
	once   sync.Once
	mu     sync.Mutex
)

// GetClient returns the shared cache client, or nil when caching is disabled.
func GetClient() *redisv9.Client {
	if !config.GetCacheEnabled() {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	once.Do(func() {
		client = redisv9.NewClient(&redisv9.Options{
			Addr: config.GetRedisAddr(),
		})
	})
	return client
}

// Close releases the shared client if one was created.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if client == nil {
		return nil
	}
	err := client.Close()
	once = sync.Once{}
	client = nil
	return err
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	client = nil
}
