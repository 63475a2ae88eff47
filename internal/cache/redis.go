package cache

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"openmarkets/pkg/logger"
)

var Client *redis.Client

// InitRedis connects the shared client. Redis is optional: with an empty
// url Client stays nil and callers run uncached.
func InitRedis(ctx context.Context, url string) error {
	if url == "" {
		logger.Get().Info("REDIS_URL not set, quote cache disabled")
		return nil
	}

	opts, err := options(url)
	if err != nil {
		return err
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return err
	}
	Client = c
	logger.Get().Infow("connected to redis", "addr", opts.Addr)
	return nil
}

// options accepts either a redis:// URL or a bare host:port.
func options(url string) (*redis.Options, error) {
	if strings.Contains(url, "://") {
		return redis.ParseURL(url)
	}
	return &redis.Options{Addr: url}, nil
}
