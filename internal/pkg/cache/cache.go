package cache

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// SetupCache connects to the Redis server at addr. A failed ping is logged
// but does not prevent startup; the client keeps retrying on use.
func SetupCache(addr, password string) *redis.Client {
	client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Warnf("[Cache] Could not connect to Redis at %s: %v", addr, err)
	} else {
		log.Infof("[Cache] Connected to Redis at %s: %s", addr, pong)
	}
	return client
}

// GetClient returns the client created by SetupCache, or nil.
func GetClient() *redis.Client {
	return client
}

// Close closes the shared client if one was created.
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
