package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
)

// NewLimiter throttles per client IP. With a Redis client the window is
// shared between mock API instances; without one it is kept in memory.
func NewLimiter(rdb *redis.Client, max int) fiber.Handler {
	cfg := limiter.Config{
		// sliding window
		Max:               max,
		Expiration:        30 * time.Second,
		LimiterMiddleware: limiter.SlidingWindow{},
	}
	if rdb != nil {
		cfg.Storage = fiberredis.NewFromConnection(rdb)
	}
	return limiter.New(cfg)
}
