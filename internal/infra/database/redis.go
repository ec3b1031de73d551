package database

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis connects the client backing the nonce store.
func NewRedis(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
