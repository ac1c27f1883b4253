package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

// redisOptions builds client options from REDIS_URL when set (full
// redis:// / rediss:// URL), otherwise from the individual REDIS_* vars.
func redisOptions() (*redis.Options, error) {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return redis.ParseURL(url)
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	return &redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		PoolSize:     10,
		MaxRetries:   3,
	}, nil
}

// ConnectRedis opens the Redis connection used for remember-me tokens and
// the write-behind view counters. Returns nil when Redis is unreachable;
// both features degrade gracefully on a nil client.
func ConnectRedis() *redis.Client {
	opts, err := redisOptions()
	if err != nil {
		log.Printf("Warning: invalid REDIS_URL: %v", err)
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis unavailable at %s: %v", opts.Addr, err)
		log.Println("Remember me and view counters are disabled")
		client.Close()
		return nil
	}

	log.Printf("Connected to Redis at %s", opts.Addr)
	RedisClient = client
	return client
}

// GetRedisClient returns the shared Redis client, nil when disabled.
func GetRedisClient() *redis.Client {
	return RedisClient
}

// CloseRedis closes the Redis connection on shutdown.
func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
