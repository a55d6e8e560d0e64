package config

import (
    "context"
    "log"
    "os"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient builds the Redis client backing the response cache and
// the rate limiter.  REDIS_URL (redis:// or rediss://) takes precedence;
// otherwise the client is assembled from REDIS_HOST, REDIS_PORT,
// REDIS_PASSWORD and REDIS_DB.  Redis is an optional dependency of this
// service: when the initial ping fails the function logs the failure
// and returns nil, and the caller runs without caching or rate
// limiting instead of refusing to start.
func NewRedisClient() *redis.Client {
    var opts *redis.Options
    if raw := os.Getenv("REDIS_URL"); raw != "" {
        parsed, err := redis.ParseURL(raw)
        if err != nil {
            log.Printf("redis: invalid REDIS_URL: %v", err)
            return nil
        }
        opts = parsed
    } else {
        addr := envStr("REDIS_HOST", "localhost") + ":" + envStr("REDIS_PORT", "6379")
        db := 0
        if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
            db = n
        }
        opts = &redis.Options{
            Addr:     addr,
            Password: os.Getenv("REDIS_PASSWORD"),
            DB:       db,
        }
    }

    client := redis.NewClient(opts)
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        log.Printf("redis: ping %s failed: %v; continuing without redis", opts.Addr, err)
        _ = client.Close()
        return nil
    }
    return client
}
