package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"openmarkets/internal/domain"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestQuoteCacheRoundTrip(t *testing.T) {
	mr, client := newMiniredis(t)
	c := NewQuoteCache(client, 30*time.Second)
	ctx := context.Background()

	if _, ok := c.GetQuote(ctx, "aapl"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.SetQuote(ctx, &domain.Quote{Symbol: "AAPL", RegularMarketPrice: 190.5})

	got, ok := c.GetQuote(ctx, "aapl")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if got.RegularMarketPrice != 190.5 {
		t.Fatalf("price = %v", got.RegularMarketPrice)
	}
	if ttl := mr.TTL("openmarkets:quote:AAPL"); ttl != 30*time.Second {
		t.Fatalf("ttl = %v", ttl)
	}

	mr.FastForward(31 * time.Second)
	if _, ok := c.GetQuote(ctx, "AAPL"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestQuoteCacheTreatsErrorsAsMiss(t *testing.T) {
	mr, client := newMiniredis(t)
	c := NewQuoteCache(client, time.Minute)
	ctx := context.Background()

	mr.Set("openmarkets:quote:BAD", "not json")
	if _, ok := c.GetQuote(ctx, "BAD"); ok {
		t.Fatal("expected miss on corrupt entry")
	}

	mr.Close()
	if _, ok := c.GetQuote(ctx, "AAPL"); ok {
		t.Fatal("expected miss when redis is down")
	}
	c.SetQuote(ctx, &domain.Quote{Symbol: "AAPL"})
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Cleanup(func() { Client = nil })

	if err := InitRedis(context.Background(), ""); err != nil {
		t.Fatalf("empty url: %v", err)
	}
	if Client != nil {
		t.Fatal("expected nil client without url")
	}

	if err := InitRedis(context.Background(), "redis://"+mr.Addr()+"/0"); err != nil {
		t.Fatalf("InitRedis: %v", err)
	}
	if Client == nil {
		t.Fatal("expected client")
	}

	Client = nil
	if err := InitRedis(context.Background(), mr.Addr()); err != nil {
		t.Fatalf("bare addr: %v", err)
	}
}
