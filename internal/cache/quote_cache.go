package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"openmarkets/internal/domain"
	"openmarkets/internal/metrics"
	"openmarkets/pkg/logger"
)

const quoteKeyPrefix = "openmarkets:quote:"

// QuoteCache stores quotes as JSON with a short TTL. Redis failures are
// logged and treated as misses.
type QuoteCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewQuoteCache(client redis.Cmdable, ttl time.Duration) *QuoteCache {
	return &QuoteCache{client: client, ttl: ttl}
}

func quoteKey(symbol string) string {
	return quoteKeyPrefix + strings.ToUpper(symbol)
}

func (c *QuoteCache) GetQuote(ctx context.Context, symbol string) (*domain.Quote, bool) {
	raw, err := c.client.Get(ctx, quoteKey(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ObserveCache("miss")
		return nil, false
	}
	if err != nil {
		metrics.ObserveCache("error")
		logger.Get().Warnw("quote cache read failed", "symbol", symbol, "error", err)
		return nil, false
	}

	var q domain.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		metrics.ObserveCache("error")
		return nil, false
	}
	metrics.ObserveCache("hit")
	return &q, true
}

func (c *QuoteCache) SetQuote(ctx context.Context, q *domain.Quote) {
	if q == nil || q.Symbol == "" {
		return
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, quoteKey(q.Symbol), raw, c.ttl).Err(); err != nil {
		logger.Get().Warnw("quote cache write failed", "symbol", q.Symbol, "error", err)
	}
}
