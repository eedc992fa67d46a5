package storage

import (
	"log"

	"github.com/go-redis/redis/v8"
)

// InitializeRedis builds the client backing the refresh-token allow-list.
func InitializeRedis(addr string) *redis.Client {
	if addr == "" {
		addr = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})
}
