package coinfolio

import (
	"encoding/json"
	"testing"
	"time"
)

func at(sec int64) time.Time { return time.Unix(sec, 0).UTC() }

func buy(q float64, price float64, t time.Time) Trade {
	return Trade{Quantity: Q(q), Price: M(price, "USDT"), Fee: M(0, "USDT"), Side: Buy, Time: t}
}

func sell(q float64, price float64, t time.Time) Trade {
	return Trade{Quantity: Q(q), Price: M(price, "USDT"), Fee: M(0, "USDT"), Side: Sell, Time: t}
}

func TestComputeAssetMetrics_BTCScenario(t *testing.T) {
	trades := []Trade{
		buy(0.1, 40000, at(1)),
		sell(0.05, 45000, at(2)),
	}

	m := ComputeAssetMetrics(trades, M(46000, "USDT"), Q(0.05))

	if !m.Metrics.AverageBuyPrice.Equal(M(40000, "USDT")) {
		t.Errorf("AverageBuyPrice = %s, want 40000", m.Metrics.AverageBuyPrice)
	}
	if !m.Metrics.RealizedProfit.Equal(M(250, "USDT")) {
		t.Errorf("RealizedProfit = %s, want 250", m.Metrics.RealizedProfit)
	}
	if !m.Metrics.AverageCost.Equal(M(40000, "USDT")) {
		t.Errorf("AverageCost = %s, want 40000", m.Metrics.AverageCost)
	}
	if !m.CurrentValue.Equal(M(2300, "USDT")) {
		t.Errorf("CurrentValue = %s, want 2300", m.CurrentValue)
	}
	if !m.Metrics.TotalInvested.Equal(M(2000, "USDT")) {
		t.Errorf("TotalInvested = %s, want 2000", m.Metrics.TotalInvested)
	}
	if !m.Metrics.UnrealizedProfit.Equal(M(300, "USDT")) {
		t.Errorf("UnrealizedProfit = %s, want 300", m.Metrics.UnrealizedProfit)
	}
	if !m.Metrics.TotalProfit.Equal(M(550, "USDT")) {
		t.Errorf("TotalProfit = %s, want 550", m.Metrics.TotalProfit)
	}
	if !m.Metrics.ROI.Equal(27.5) {
		t.Errorf("ROI = %s, want 27.50%%", m.Metrics.ROI)
	}
	// envelope 40000..46000, anchored on the lowest bound
	if !m.Metrics.PriceVolatility.Equal(15) {
		t.Errorf("PriceVolatility = %s, want 15.00%%", m.Metrics.PriceVolatility)
	}
}

func TestComputeAssetMetrics_WeightedAverageBuyPrice(t *testing.T) {
	trades := []Trade{
		buy(1, 100, at(1)),
		buy(3, 200, at(2)),
	}

	m := ComputeAssetMetrics(trades, M(200, "USDT"), Q(4))

	// (100 + 600) / 4 = 175, weighted by quantity not by trade
	if !m.Metrics.AverageBuyPrice.Equal(M(175, "USDT")) {
		t.Errorf("AverageBuyPrice = %s, want 175", m.Metrics.AverageBuyPrice)
	}
}

func TestComputeAssetMetrics_ReconciliationGrowsHoldings(t *testing.T) {
	trades := []Trade{
		buy(1, 100, at(1)),
		buy(1, 200, at(2)),
	}

	// the live balance holds 5 units the lots cannot explain, the 3 extra
	// units are costed at the average buy price of 150
	m := ComputeAssetMetrics(trades, M(200, "USDT"), Q(5))

	if !m.Metrics.AverageCost.Equal(M(150, "USDT")) {
		t.Errorf("AverageCost = %s, want 150", m.Metrics.AverageCost)
	}
	if !m.Metrics.TotalInvested.Equal(M(750, "USDT")) {
		t.Errorf("TotalInvested = %s, want 750", m.Metrics.TotalInvested)
	}
}

func TestComputeAssetMetrics_ReconciliationNeverShrinks(t *testing.T) {
	trades := []Trade{buy(10, 100, at(1))}

	// holding less than the lots explain leaves the lot cost untouched
	m := ComputeAssetMetrics(trades, M(100, "USDT"), Q(4))

	if !m.Metrics.AverageCost.Equal(M(100, "USDT")) {
		t.Errorf("AverageCost = %s, want 100", m.Metrics.AverageCost)
	}
	if !m.Metrics.TotalInvested.Equal(M(400, "USDT")) {
		t.Errorf("TotalInvested = %s, want 400: invested follows the live balance", m.Metrics.TotalInvested)
	}
}

func TestComputeAssetMetrics_SellBeforeBuyStillMatches(t *testing.T) {
	// every buy enters the queue before any sell is matched, so a sell that
	// predates its buy still finds a lot
	trades := []Trade{
		sell(1, 150, at(1)),
		buy(1, 100, at(2)),
	}

	m := ComputeAssetMetrics(trades, M(100, "USDT"), Q(0))

	if !m.Metrics.RealizedProfit.Equal(M(50, "USDT")) {
		t.Errorf("RealizedProfit = %s, want 50", m.Metrics.RealizedProfit)
	}
}

func TestComputeAssetMetrics_UnmatchedSellIsDropped(t *testing.T) {
	trades := []Trade{sell(2, 150, at(1))}

	m := ComputeAssetMetrics(trades, M(150, "USDT"), Q(0))

	if !m.Metrics.RealizedProfit.IsZero() {
		t.Errorf("RealizedProfit = %s, want 0: a sell without a lot contributes nothing", m.Metrics.RealizedProfit)
	}
	if !m.Trading.TotalSold.Equal(Q(2)) {
		t.Errorf("TotalSold = %s, want 2: activity still counts the sell", m.Trading.TotalSold)
	}
}

func TestComputeAssetMetrics_FeesCountOnBothSides(t *testing.T) {
	trades := []Trade{
		{Quantity: Q(1), Price: M(100, "USDT"), Fee: M(1, "USDT"), Side: Buy, Time: at(1)},
		{Quantity: Q(1), Price: M(200, "USDT"), Fee: M(2, "USDT"), Side: Sell, Time: at(2)},
	}

	m := ComputeAssetMetrics(trades, M(200, "USDT"), Q(0))

	if !m.Trading.TotalFees.Equal(M(3, "USDT")) {
		t.Errorf("TotalFees = %s, want 3", m.Trading.TotalFees)
	}
	if m.Trading.BuyTrades != 1 || m.Trading.SellTrades != 1 || m.Trading.NumberOfTrades != 2 {
		t.Errorf("trade counts = %d/%d/%d, want 1/1/2",
			m.Trading.BuyTrades, m.Trading.SellTrades, m.Trading.NumberOfTrades)
	}
}

func TestComputeAssetMetrics_NoTrades(t *testing.T) {
	m := ComputeAssetMetrics(nil, M(100, "USDT"), Q(2))

	// the whole report is defined, the envelope collapses on the current price
	if !m.CurrentValue.Equal(M(200, "USDT")) {
		t.Errorf("CurrentValue = %s, want 200", m.CurrentValue)
	}
	if !m.PriceRange.Lowest.Equal(M(100, "USDT")) || !m.PriceRange.Highest.Equal(M(100, "USDT")) {
		t.Errorf("price range = %s..%s, want 100..100", m.PriceRange.Lowest, m.PriceRange.Highest)
	}
	if !m.Metrics.PriceVolatility.Equal(0) {
		t.Errorf("PriceVolatility = %s, want 0", m.Metrics.PriceVolatility)
	}
	if !m.Metrics.ROI.Equal(0) {
		t.Errorf("ROI = %s, want 0: nothing invested means no return", m.Metrics.ROI)
	}
}

func TestComputeAssetMetrics_AllZeroInputs(t *testing.T) {
	m := ComputeAssetMetrics(nil, M(0, "USDT"), Q(0))

	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("zero report does not marshal: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("zero report marshals to nothing")
	}
}

func TestComputeAssetMetrics_EnvelopeTracksTrades(t *testing.T) {
	trades := []Trade{
		buy(1, 80, at(1)),
		sell(1, 120, at(2)),
	}

	m := ComputeAssetMetrics(trades, M(100, "USDT"), Q(0))

	if !m.PriceRange.Lowest.Equal(M(80, "USDT")) {
		t.Errorf("Lowest = %s, want 80", m.PriceRange.Lowest)
	}
	if !m.PriceRange.Highest.Equal(M(120, "USDT")) {
		t.Errorf("Highest = %s, want 120", m.PriceRange.Highest)
	}
	if !m.Metrics.PriceVolatility.Equal(50) {
		t.Errorf("PriceVolatility = %s, want 50.00%%", m.Metrics.PriceVolatility)
	}
}

func TestComputeAssetMetrics_Idempotent(t *testing.T) {
	trades := []Trade{
		buy(2, 100, at(3)),
		sell(1, 150, at(4)),
		buy(1, 120, at(1)),
	}

	first := ComputeAssetMetrics(trades, M(130, "USDT"), Q(2))
	second := ComputeAssetMetrics(trades, M(130, "USDT"), Q(2))

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("two runs over the same input disagree:\n%s\n%s", a, b)
	}
}

func TestComputeAssetMetrics_DoesNotReorderInput(t *testing.T) {
	trades := []Trade{
		buy(1, 200, at(2)),
		buy(1, 100, at(1)),
	}

	ComputeAssetMetrics(trades, M(100, "USDT"), Q(2))

	if !trades[0].Price.Equal(M(200, "USDT")) {
		t.Error("the input slice was reordered")
	}
}
