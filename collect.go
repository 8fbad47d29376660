package coinfolio

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Balance is one asset balance on an exchange account.
type Balance struct {
	Asset  string
	Free   Quantity
	Locked Quantity
}

// Total returns the spendable plus locked quantity.
func (b Balance) Total() Quantity { return b.Free.Add(b.Locked) }

// Exchange is everything the collectors need from a venue. The binance
// and mexc packages implement it; tests provide their own doubles.
//
// Implementations are expected to degrade rather than invent: an upstream
// failure is an error return here, and the collectors decide how much of
// the batch survives it.
type Exchange interface {
	// Name identifies the venue in reports ("binance", "mexc").
	Name() string
	// Balances lists the account balances with a non-zero total.
	Balances(ctx context.Context) ([]Balance, error)
	// Prices returns the current price of every listed pair, keyed by
	// pair symbol (e.g. "BTCUSDT"). The prices carry no currency; the
	// caller knows which quote it asked the map for.
	Prices(ctx context.Context) (map[string]Money, error)
	// Trades returns the account's trade history for one pair.
	Trades(ctx context.Context, symbol string) ([]RawTrade, error)
}

// Collect computes one AssetMetrics per asset held on the exchange with a
// listed price against the quote currency. Assets are independent, so
// their histories are fetched and computed in parallel.
//
// A failing trade-history fetch degrades that one asset to an empty
// history (the reconciliation against the live balance still values it);
// only the balance or price listing failing aborts the exchange.
func Collect(ctx context.Context, x Exchange, quote string) ([]AssetMetrics, error) {
	balances, err := x.Balances(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s balances: %w", x.Name(), err)
	}
	prices, err := x.Prices(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s prices: %w", x.Name(), err)
	}

	var held []Balance
	for _, b := range balances {
		if b.Asset == quote || !b.Total().IsPositive() {
			continue
		}
		if _, ok := prices[b.Asset+quote]; !ok {
			// not traded against the quote currency, nothing to value
			continue
		}
		held = append(held, b)
	}

	out := make([]AssetMetrics, len(held))
	var wg sync.WaitGroup
	for i, b := range held {
		// pin the quote currency, prices come out of the map currency-less
		price := M(0, quote).Add(prices[b.Asset+quote])
		wg.Add(1)
		go func(i int, b Balance, price Money) {
			defer wg.Done()
			out[i] = collectAsset(ctx, x, b, price, quote)
		}(i, b, price)
	}
	wg.Wait()
	return out, nil
}

func collectAsset(ctx context.Context, x Exchange, b Balance, price Money, quote string) AssetMetrics {
	raw, err := x.Trades(ctx, b.Asset+quote)
	if err != nil {
		log.Printf("warning: cannot fetch %s trade history for %s: %v", x.Name(), b.Asset, err)
		raw = nil
	}
	m := ComputeAssetMetrics(NormalizeTrades(raw, quote), price, b.Total())
	m.Symbol = b.Asset
	m.Exchange = x.Name()
	return m
}

// CollectAll merges the metrics collected from several exchanges. A
// failing exchange is reported and skipped, it never aborts the batch.
func CollectAll(ctx context.Context, quote string, exchanges ...Exchange) []AssetMetrics {
	var all []AssetMetrics
	for _, x := range exchanges {
		metrics, err := Collect(ctx, x, quote)
		if err != nil {
			log.Printf("warning: skipping exchange: %v", err)
			continue
		}
		all = append(all, metrics...)
	}
	return all
}
