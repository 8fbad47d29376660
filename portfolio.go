package coinfolio

import "sort"

// DefaultMinAssetValue is the default aggregation threshold, in quote
// units: assets worth less than this are dust and stay out of the
// portfolio report.
const DefaultMinAssetValue = 5

// PortfolioMetrics aggregates the asset reports that pass the minimum
// value filter into portfolio-level totals.
type PortfolioMetrics struct {
	TotalInvested    Money         `json:"totalInvested"`
	CurrentValue     Money         `json:"currentValue"`
	RealizedProfit   Money         `json:"realizedProfit"`
	UnrealizedProfit Money         `json:"unrealizedProfit"`
	TotalProfit      Money         `json:"totalProfit"`
	TotalFees        Money         `json:"totalFees"`
	NumberOfTrades   int           `json:"numberOfTrades"`
	Assets           int           `json:"assets"`
	TotalROI         Percent       `json:"totalRoi"`
	Distribution     []AssetWeight `json:"distribution"`
}

// AssetWeight is one asset's share of the total portfolio value.
type AssetWeight struct {
	Symbol     string  `json:"symbol"`
	Percentage Percent `json:"percentage"`
	Value      Money   `json:"value"`
}

// ComputePortfolioMetrics folds a batch of asset reports into one
// portfolio report. Assets whose current value is below minValue are
// ignored entirely. Like ComputeAssetMetrics it is total: an empty batch
// yields a structurally complete zero record.
//
// The distribution is sorted by value descending and its percentages sum
// to 100 whenever the retained value is positive; with nothing of value
// the distribution is empty rather than divided by zero.
func ComputePortfolioMetrics(assets []AssetMetrics, minValue Money) PortfolioMetrics {
	quote := minValue.Currency()

	var retained []AssetMetrics
	for _, a := range assets {
		if a.CurrentValue.GreaterThanOrEqual(minValue) {
			retained = append(retained, a)
		}
	}

	portfolio := PortfolioMetrics{
		TotalInvested:    M(0, quote),
		CurrentValue:     M(0, quote),
		RealizedProfit:   M(0, quote),
		UnrealizedProfit: M(0, quote),
		TotalProfit:      M(0, quote),
		TotalFees:        M(0, quote),
		Assets:           len(retained),
		Distribution:     []AssetWeight{},
	}

	for _, a := range retained {
		portfolio.TotalInvested = portfolio.TotalInvested.Add(a.Metrics.TotalInvested)
		portfolio.CurrentValue = portfolio.CurrentValue.Add(a.CurrentValue)
		portfolio.RealizedProfit = portfolio.RealizedProfit.Add(a.Metrics.RealizedProfit)
		portfolio.UnrealizedProfit = portfolio.UnrealizedProfit.Add(a.Metrics.UnrealizedProfit)
		portfolio.TotalProfit = portfolio.TotalProfit.Add(a.Metrics.TotalProfit)
		portfolio.TotalFees = portfolio.TotalFees.Add(a.Trading.TotalFees)
		portfolio.NumberOfTrades += a.Trading.NumberOfTrades
	}

	portfolio.TotalROI = ratioPercent(portfolio.TotalProfit, portfolio.TotalInvested)

	if portfolio.CurrentValue.IsPositive() {
		for _, a := range retained {
			portfolio.Distribution = append(portfolio.Distribution, AssetWeight{
				Symbol:     a.Symbol,
				Percentage: ratioPercent(a.CurrentValue, portfolio.CurrentValue),
				Value:      a.CurrentValue,
			})
		}
		sort.SliceStable(portfolio.Distribution, func(i, j int) bool {
			return portfolio.Distribution[i].Value.GreaterThan(portfolio.Distribution[j].Value)
		})
	}

	return portfolio
}
