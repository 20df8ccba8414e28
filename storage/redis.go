package storage

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis holds parked refresh tokens for staff sessions and the short-lived
// dashboard stats cache. Everything in it is reconstructible; losing the
// instance only logs staff out and recomputes counters.
var Redis *redis.Client

func InitializeRedis() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	pingContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Redis.Ping(pingContext).Err(); err != nil {
		// Sessions and stats caching degrade; bookings and folios do not.
		log.Println("Redis unreachable at", addr+":", err)
		return
	}
	log.Println("Redis session store ready at", addr)
}
