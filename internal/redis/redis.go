package redis

import (
	"github.com/redis/go-redis/v9"
)

// NewClient returns a client for the month cache.
func NewClient(address, username, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
}
