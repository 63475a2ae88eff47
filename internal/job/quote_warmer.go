package job

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
	"openmarkets/pkg/logger"
)

const warmBatchSize = 10

type QuoteFetcher interface {
	GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error)
}

// QuoteWarmer refreshes a watchlist of quotes on a fixed interval so the
// quote cache answers the common symbols.
type QuoteWarmer struct {
	tracer   trace.Tracer
	quotes   QuoteFetcher
	symbols  []string
	interval time.Duration
}

func NewQuoteWarmer(tracer trace.Tracer, quotes QuoteFetcher, symbols []string, interval time.Duration) *QuoteWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &QuoteWarmer{
		tracer:   tracer,
		quotes:   quotes,
		symbols:  symbols,
		interval: interval,
	}
}

// Start warms once, then on every tick. Blocks until ctx is cancelled.
func (w *QuoteWarmer) Start(ctx context.Context) {
	log := logger.Get()
	if w.quotes == nil || len(w.symbols) == 0 {
		log.Info("quote warmer disabled: nothing to warm")
		<-ctx.Done()
		return
	}

	log.Infow("quote warmer starting", "symbols", len(w.symbols), "interval", w.interval)
	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("quote warmer stopped")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

// warm fetches the watchlist in batches and returns how many quotes came back.
func (w *QuoteWarmer) warm(ctx context.Context) int {
	ctx, span := w.tracer.Start(ctx, "quote-warmer.warm")
	defer span.End()

	warmed := 0
	for start := 0; start < len(w.symbols); start += warmBatchSize {
		end := min(start+warmBatchSize, len(w.symbols))
		batch := w.symbols[start:end]

		quotes, err := w.quotes.GetQuotes(ctx, batch)
		if err != nil {
			logger.Get().Warnw("quote warm batch failed", "symbols", batch, "error", err)
			continue
		}
		warmed += len(quotes)
	}
	span.SetAttributes(attribute.Int("quotes.warmed", warmed))
	return warmed
}
