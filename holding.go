package coinfolio

import (
	"context"
	"fmt"
)

// HoldingReport is the valued balance sheet of one exchange account.
type HoldingReport struct {
	Exchange   string         `json:"exchange"`
	Holdings   []AssetHolding `json:"holdings"`
	TotalValue Money          `json:"totalValue"`
}

// AssetHolding is one valued balance.
type AssetHolding struct {
	Asset    string   `json:"asset"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`
	Value    Money    `json:"value"`
}

// CollectHoldings values every balance held on the exchange at the
// current price of its pair against the quote currency. Balances without
// a listed pair are skipped, except the quote currency itself which is
// worth its face value.
func CollectHoldings(ctx context.Context, x Exchange, quote string) (*HoldingReport, error) {
	balances, err := x.Balances(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s balances: %w", x.Name(), err)
	}
	prices, err := x.Prices(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s prices: %w", x.Name(), err)
	}

	report := &HoldingReport{
		Exchange:   x.Name(),
		Holdings:   []AssetHolding{},
		TotalValue: M(0, quote),
	}

	for _, b := range balances {
		total := b.Total()
		if !total.IsPositive() {
			continue
		}

		var price Money
		if b.Asset == quote {
			price = M(1, quote)
		} else if p, ok := prices[b.Asset+quote]; ok {
			price = M(0, quote).Add(p)
		} else {
			continue
		}

		value := price.Mul(total)
		report.Holdings = append(report.Holdings, AssetHolding{
			Asset:    b.Asset,
			Quantity: total,
			Price:    price,
			Value:    value,
		})
		report.TotalValue = report.TotalValue.Add(value)
	}
	return report, nil
}
