package coinfolio

import (
	"context"
	"errors"
	"sort"
	"testing"
)

// fakeExchange implements Exchange with pluggable responses.
type fakeExchange struct {
	name      string
	balances  []Balance
	prices    map[string]Money
	trades    map[string][]RawTrade
	tradesErr error
	fail      bool
}

func (f *fakeExchange) Name() string { return f.name }

func (f *fakeExchange) Balances(ctx context.Context) ([]Balance, error) {
	if f.fail {
		return nil, errors.New("api down")
	}
	return f.balances, nil
}

func (f *fakeExchange) Prices(ctx context.Context) (map[string]Money, error) {
	if f.fail {
		return nil, errors.New("api down")
	}
	return f.prices, nil
}

func (f *fakeExchange) Trades(ctx context.Context, symbol string) ([]RawTrade, error) {
	if f.tradesErr != nil {
		return nil, f.tradesErr
	}
	return f.trades[symbol], nil
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{
		name: "fake",
		balances: []Balance{
			{Asset: "BTC", Free: Q(0.05)},
			{Asset: "ETH", Free: Q(1), Locked: Q(1)},
			{Asset: "USDT", Free: Q(500)},
			{Asset: "UNLISTED", Free: Q(42)},
			{Asset: "EMPTY", Free: Q(0)},
		},
		prices: map[string]Money{
			"BTCUSDT": M(46000, ""),
			"ETHUSDT": M(3000, ""),
		},
		trades: map[string][]RawTrade{
			"BTCUSDT": {
				{Symbol: "BTCUSDT", Qty: "0.1", Price: "40000", Time: 1000, IsBuyer: true},
				{Symbol: "BTCUSDT", Qty: "0.05", Price: "45000", Time: 2000, IsBuyer: false},
			},
		},
	}
}

func TestCollect(t *testing.T) {
	metrics, err := Collect(context.Background(), newFakeExchange(), "USDT")
	if err != nil {
		t.Fatal(err)
	}

	// quote, unlisted and empty balances are filtered out
	if len(metrics) != 2 {
		t.Fatalf("collected %d assets, want 2", len(metrics))
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Symbol < metrics[j].Symbol })

	btc := metrics[0]
	if btc.Symbol != "BTC" || btc.Exchange != "fake" {
		t.Errorf("identity = %s/%s, want BTC/fake", btc.Symbol, btc.Exchange)
	}
	if !btc.Metrics.RealizedProfit.Equal(M(250, "USDT")) {
		t.Errorf("BTC RealizedProfit = %s, want 250", btc.Metrics.RealizedProfit)
	}
	if !btc.CurrentValue.Equal(M(2300, "USDT")) {
		t.Errorf("BTC CurrentValue = %s, want 2300", btc.CurrentValue)
	}

	eth := metrics[1]
	if !eth.CurrentHoldings.Equal(Q(2)) {
		t.Errorf("ETH holdings = %s, want 2: free plus locked", eth.CurrentHoldings)
	}
	// no trade history, the whole position is reconciled at zero cost
	if !eth.CurrentValue.Equal(M(6000, "USDT")) {
		t.Errorf("ETH CurrentValue = %s, want 6000", eth.CurrentValue)
	}
}

func TestCollect_TradeFetchFailureDegrades(t *testing.T) {
	x := newFakeExchange()
	x.tradesErr = errors.New("rate limited")

	metrics, err := Collect(context.Background(), x, "USDT")
	if err != nil {
		t.Fatalf("a trade fetch failure must not abort the exchange: %v", err)
	}
	if len(metrics) != 2 {
		t.Fatalf("collected %d assets, want 2", len(metrics))
	}
	for _, m := range metrics {
		if m.Trading.NumberOfTrades != 0 {
			t.Errorf("%s has %d trades, want 0 after degradation", m.Symbol, m.Trading.NumberOfTrades)
		}
		if !m.CurrentValue.IsPositive() {
			t.Errorf("%s has no value, the live balance should still be valued", m.Symbol)
		}
	}
}

func TestCollect_BalanceFailureAborts(t *testing.T) {
	x := newFakeExchange()
	x.fail = true

	if _, err := Collect(context.Background(), x, "USDT"); err == nil {
		t.Fatal("expected an error when the balance listing fails")
	}
}

func TestCollectAll_SkipsFailingExchange(t *testing.T) {
	bad := newFakeExchange()
	bad.name = "bad"
	bad.fail = true

	all := CollectAll(context.Background(), "USDT", bad, newFakeExchange())

	if len(all) != 2 {
		t.Fatalf("collected %d assets, want 2 from the surviving exchange", len(all))
	}
	for _, m := range all {
		if m.Exchange != "fake" {
			t.Errorf("asset from %s, want fake only", m.Exchange)
		}
	}
}

func TestCollectHoldings(t *testing.T) {
	report, err := CollectHoldings(context.Background(), newFakeExchange(), "USDT")
	if err != nil {
		t.Fatal(err)
	}

	if report.Exchange != "fake" {
		t.Errorf("Exchange = %s, want fake", report.Exchange)
	}
	// BTC, ETH and the quote balance itself; UNLISTED has no pair
	if len(report.Holdings) != 3 {
		t.Fatalf("%d holdings, want 3", len(report.Holdings))
	}
	// 0.05x46000 + 2x3000 + 500
	if !report.TotalValue.Equal(M(8800, "USDT")) {
		t.Errorf("TotalValue = %s, want 8800", report.TotalValue)
	}
	for _, h := range report.Holdings {
		if h.Asset == "USDT" && !h.Price.Equal(M(1, "USDT")) {
			t.Errorf("quote priced at %s, want its face value", h.Price)
		}
	}
}
