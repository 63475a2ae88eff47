package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

// ErrInvalidInput marks caller mistakes. Transports map it to a client error.
var ErrInvalidInput = errors.New("invalid input")

var symbolPattern = regexp.MustCompile(`^[A-Z0-9^=.\-]{1,20}$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NormalizeSymbol trims and upper-cases symbol and checks it against the
// ticker alphabet.
func NormalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", invalid("symbol is required")
	}
	if !symbolPattern.MatchString(symbol) {
		return "", invalid("unsupported symbol: %s", symbol)
	}
	return symbol, nil
}

// NormalizePeriod returns def for an empty period.
func NormalizePeriod(period, def string) (string, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	if period == "" {
		return def, nil
	}
	for _, p := range domain.SupportedPeriods {
		if p == period {
			return period, nil
		}
	}
	return "", invalid("unsupported period: %s", period)
}

// NormalizeInterval returns def for an empty interval.
func NormalizeInterval(interval, def string) (string, error) {
	interval = strings.TrimSpace(interval)
	if interval == "" {
		return def, nil
	}
	for _, i := range domain.SupportedIntervals {
		if i == interval {
			return interval, nil
		}
	}
	return "", invalid("unsupported interval: %s", interval)
}

// ParseExpiration parses a YYYY-MM-DD expiration. An empty string means the
// nearest expiration and yields nil.
func ParseExpiration(expiration string) (*time.Time, error) {
	expiration = strings.TrimSpace(expiration)
	if expiration == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", expiration)
	if err != nil {
		return nil, invalid("expiration must be YYYY-MM-DD: %s", expiration)
	}
	return &t, nil
}

// NormalizeMarket accepts any case.
func NormalizeMarket(market string) (domain.MarketType, error) {
	m := domain.MarketType(strings.ToUpper(strings.TrimSpace(market)))
	if m == "" {
		return domain.MarketUS, nil
	}
	if !m.IsValid() {
		return "", invalid("unsupported market: %s", market)
	}
	return m, nil
}

// bySymbol runs a symbol-keyed repository read under its own span.
func bySymbol[T any](ctx context.Context, tracer trace.Tracer, name, symbol string, read func(context.Context, string) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	var zero T
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return zero, err
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	out, err := read(ctx, symbol)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", name, symbol, err)
	}
	return out, nil
}
