package coinfolio

// AssetMetrics is the complete metrics report for one asset on one
// exchange. It is always fully initialized: every field carries a value
// (possibly zero), so aggregation never needs presence checks.
type AssetMetrics struct {
	Symbol          string            `json:"symbol"`
	Exchange        string            `json:"exchange"`
	CurrentHoldings Quantity          `json:"currentHoldings"`
	CurrentValue    Money             `json:"currentValue"`
	Metrics         InvestmentMetrics `json:"metrics"`
	Trading         TradingActivity   `json:"trading"`
	PriceRange      PriceRange        `json:"priceRange"`
}

// InvestmentMetrics holds the cost-basis and performance figures.
//
// AverageBuyPrice is the weighted average over every buy ever made;
// AverageCost is the average cost of what is held right now, after FIFO
// consumption and reconciliation against the live balance.
type InvestmentMetrics struct {
	AverageCost      Money   `json:"averageCost"`
	AverageBuyPrice  Money   `json:"averageBuyPrice"`
	CurrentPrice     Money   `json:"currentPrice"`
	TotalInvested    Money   `json:"totalInvested"`
	RealizedProfit   Money   `json:"realizedProfit"`
	UnrealizedProfit Money   `json:"unrealizedProfit"`
	TotalProfit      Money   `json:"totalProfit"`
	ROI              Percent `json:"roi"`
	PriceVolatility  Percent `json:"priceVolatility"`
}

// TradingActivity sums up the raw trading volume behind the metrics.
type TradingActivity struct {
	TotalBought        Quantity `json:"totalBought"`
	TotalSold          Quantity `json:"totalSold"`
	TotalSpentBuying   Money    `json:"totalSpentBuying"`
	TotalGainedSelling Money    `json:"totalGainedSelling"`
	TotalFees          Money    `json:"totalFees"`
	NumberOfTrades     int      `json:"numberOfTrades"`
	BuyTrades          int      `json:"buyTrades"`
	SellTrades         int      `json:"sellTrades"`
}

// PriceRange is the observed price envelope over the trade history.
type PriceRange struct {
	Highest Money `json:"highest"`
	Lowest  Money `json:"lowest"`
	Current Money `json:"current"`
}

// ComputeAssetMetrics converts an unordered trade history, the current
// market price and the live balance into an AssetMetrics report.
//
// It is a pure, total function: any input yields a structurally complete
// report with no NaN and no error. The caller fills in Symbol and
// Exchange, the engine does not care about identity.
//
// currentHoldings is the authoritative balance. When it exceeds what the
// tracked lots explain (truncated history, external transfers), the gap is
// assumed acquired at the average buy price.
func ComputeAssetMetrics(trades []Trade, currentPrice Money, currentHoldings Quantity) AssetMetrics {
	sorted := sortTrades(trades)
	quote := currentPrice.Currency()

	// Single pass: partition buys into the open-lot queue, keep sells
	// aside, and accumulate the running totals. Fees count on both sides.
	var open lots
	var sales []Trade
	totalBought, totalSold := Q(0), Q(0)
	totalSpentBuying := M(0, quote)
	totalGainedSelling := M(0, quote)
	totalFees := M(0, quote)
	buyCount, sellCount := 0, 0

	for _, t := range sorted {
		totalFees = totalFees.Add(t.Fee)
		if t.Side == Buy {
			open = append(open, lot{Quantity: t.Quantity, Price: t.Price})
			totalBought = totalBought.Add(t.Quantity)
			totalSpentBuying = totalSpentBuying.Add(t.Price.Mul(t.Quantity))
			buyCount++
		} else {
			sales = append(sales, t)
			totalSold = totalSold.Add(t.Quantity)
			totalGainedSelling = totalGainedSelling.Add(t.Price.Mul(t.Quantity))
			sellCount++
		}
	}

	averageBuyPrice := M(0, quote)
	if totalBought.IsPositive() {
		averageBuyPrice = totalSpentBuying.Div(totalBought)
	}

	// FIFO matching: each sell consumes the oldest open lots, threading a
	// fresh queue through every step.
	realizedProfit := M(0, quote)
	for _, sale := range sales {
		var delta Money
		open, delta = open.match(sale.Quantity, sale.Price)
		realizedProfit = realizedProfit.Add(delta)
	}

	// Cost of what is left, reconciled against the live balance: holdings
	// the lots cannot explain are costed at the average buy price. The
	// reconciliation only ever grows the tracked quantity.
	remainingQuantity, remainingCost := open.totals(quote)
	if currentHoldings.GreaterThan(remainingQuantity) {
		extra := currentHoldings.Sub(remainingQuantity)
		remainingCost = remainingCost.Add(averageBuyPrice.Mul(extra))
		remainingQuantity = currentHoldings
	}

	averageCost := averageBuyPrice
	if remainingQuantity.IsPositive() {
		averageCost = remainingCost.Div(remainingQuantity)
	}

	currentValue := currentPrice.Mul(currentHoldings)
	totalInvested := averageCost.Mul(currentHoldings)
	unrealizedProfit := currentValue.Sub(totalInvested)
	totalProfit := realizedProfit.Add(unrealizedProfit)
	roi := ratioPercent(totalProfit, totalInvested)

	// Price envelope. With no trade at all both bounds collapse on the
	// current price, which keeps the volatility at zero.
	highest, lowest := currentPrice, currentPrice
	for i, t := range sorted {
		if i == 0 || t.Price.LessThan(lowest) {
			lowest = t.Price
		}
		if t.Price.GreaterThan(highest) {
			highest = t.Price
		}
	}
	priceVolatility := ratioPercent(highest.Sub(lowest), lowest)

	return AssetMetrics{
		CurrentHoldings: currentHoldings,
		CurrentValue:    currentValue,
		Metrics: InvestmentMetrics{
			AverageCost:      averageCost,
			AverageBuyPrice:  averageBuyPrice,
			CurrentPrice:     currentPrice,
			TotalInvested:    totalInvested,
			RealizedProfit:   realizedProfit,
			UnrealizedProfit: unrealizedProfit,
			TotalProfit:      totalProfit,
			ROI:              roi,
			PriceVolatility:  priceVolatility,
		},
		Trading: TradingActivity{
			TotalBought:        totalBought,
			TotalSold:          totalSold,
			TotalSpentBuying:   totalSpentBuying,
			TotalGainedSelling: totalGainedSelling,
			TotalFees:          totalFees,
			NumberOfTrades:     len(sorted),
			BuyTrades:          buyCount,
			SellTrades:         sellCount,
		},
		PriceRange: PriceRange{
			Highest: highest,
			Lowest:  lowest,
			Current: currentPrice,
		},
	}
}
