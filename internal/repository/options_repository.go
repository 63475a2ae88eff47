package repository

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openmarkets/internal/domain"
)

// requiredContractFields must be present on every contract for skew.
var requiredContractFields = []string{"strike", "impliedVolatility"}

type OptionsRepository struct {
	source Source
	tracer trace.Tracer
}

func NewOptionsRepository(source Source, tracer trace.Tracer) *OptionsRepository {
	return &OptionsRepository{source: source, tracer: tracer}
}

// GetExpirations lists expiration dates, nearest first. A symbol with no
// listed options returns an empty slice.
func (r *OptionsRepository) GetExpirations(ctx context.Context, symbol string) ([]time.Time, error) {
	ctx, span := r.tracer.Start(ctx, "options-repo.get-expirations")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	res, err := r.source.Options(ctx, symbol, 0)
	if noData(err) {
		return []time.Time{}, nil
	}
	if err != nil {
		return nil, err
	}
	return expirations(res), nil
}

// GetChain returns the chain for expiration, or the nearest expiration when
// expiration is nil. Symbols without options yield a chain with no
// expirations rather than an error.
func (r *OptionsRepository) GetChain(ctx context.Context, symbol string, expiration *time.Time) (*domain.OptionsChain, error) {
	ctx, span := r.tracer.Start(ctx, "options-repo.get-chain")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	var date int64
	if expiration != nil {
		date = expiration.Unix()
		span.SetAttributes(attribute.String("expiration", domain.ExpirationDate(*expiration)))
	}

	chain := &domain.OptionsChain{Symbol: symbol}
	res, err := r.source.Options(ctx, symbol, date)
	if noData(err) {
		return chain, nil
	}
	if err != nil {
		return nil, err
	}

	chain.Expirations = expirations(res)
	if p := res.Get("quote.regularMarketPrice"); p.Type == gjson.Number {
		v := p.Float()
		chain.UnderlyingLast = &v
	}

	block := res.Get("options.0")
	if !block.Exists() {
		return chain, nil
	}
	if exp := block.Get("expirationDate"); exp.Exists() {
		chain.Expiration = time.Unix(exp.Int(), 0).UTC()
	} else if expiration != nil {
		chain.Expiration = expiration.UTC()
	}

	missing := make(map[string]bool)
	chain.Calls = contracts(block.Get("calls"), domain.OptionCall, chain.Expiration, missing)
	chain.Puts = contracts(block.Get("puts"), domain.OptionPut, chain.Expiration, missing)
	for _, f := range requiredContractFields {
		if missing[f] {
			chain.MissingColumns = append(chain.MissingColumns, f)
		}
	}
	return chain, nil
}

func expirations(res gjson.Result) []time.Time {
	dates := res.Get("expirationDates").Array()
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		out = append(out, time.Unix(d.Int(), 0).UTC())
	}
	return out
}

func contracts(rows gjson.Result, kind domain.OptionType, expiration time.Time, missing map[string]bool) []domain.OptionContract {
	list := rows.Array()
	out := make([]domain.OptionContract, 0, len(list))
	for _, row := range list {
		for _, f := range requiredContractFields {
			if !row.Get(f).Exists() {
				missing[f] = true
			}
		}
		c := domain.OptionContract{
			ContractSymbol:    row.Get("contractSymbol").String(),
			Type:              kind,
			Strike:            row.Get("strike").Float(),
			LastPrice:         row.Get("lastPrice").Float(),
			Bid:               row.Get("bid").Float(),
			Ask:               row.Get("ask").Float(),
			Change:            row.Get("change").Float(),
			PercentChange:     row.Get("percentChange").Float(),
			Volume:            optInt(row.Get("volume")),
			OpenInterest:      row.Get("openInterest").Int(),
			ImpliedVolatility: row.Get("impliedVolatility").Float(),
			InTheMoney:        row.Get("inTheMoney").Bool(),
			ContractSize:      row.Get("contractSize").String(),
			Currency:          row.Get("currency").String(),
			Expiration:        expiration,
		}
		if ts := row.Get("lastTradeDate"); ts.Exists() {
			c.LastTradeDate = time.Unix(ts.Int(), 0).UTC()
		}
		out = append(out, c)
	}
	return out
}
