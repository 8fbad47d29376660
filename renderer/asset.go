// Package renderer turns the coinfolio reports into markdown documents.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/coinfolio"
	md "github.com/nao1215/markdown"
)

// AssetMarkdown renders one asset report to a markdown string.
func AssetMarkdown(a *coinfolio.AssetMetrics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s on %s", a.Symbol, a.Exchange))
	doc.PlainText(fmt.Sprintf("Holding %s %s worth %s", a.CurrentHoldings, a.Symbol, a.CurrentValue))

	doc.H2("Investment")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Current Price", a.Metrics.CurrentPrice.String()},
			{"Average Cost", a.Metrics.AverageCost.String()},
			{"Average Buy Price", a.Metrics.AverageBuyPrice.String()},
			{"Total Invested", a.Metrics.TotalInvested.String()},
			{"Realized Profit", a.Metrics.RealizedProfit.SignedString()},
			{"Unrealized Profit", a.Metrics.UnrealizedProfit.SignedString()},
			{"Total Profit", a.Metrics.TotalProfit.SignedString()},
			{"ROI", a.Metrics.ROI.SignedString()},
		},
	})

	doc.H2("Trading Activity")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Trades", fmt.Sprintf("%d (%d buys, %d sells)",
				a.Trading.NumberOfTrades, a.Trading.BuyTrades, a.Trading.SellTrades)},
			{"Total Bought", a.Trading.TotalBought.String()},
			{"Total Sold", a.Trading.TotalSold.String()},
			{"Total Spent Buying", a.Trading.TotalSpentBuying.String()},
			{"Total Gained Selling", a.Trading.TotalGainedSelling.String()},
			{"Total Fees", a.Trading.TotalFees.String()},
		},
	})

	doc.H2("Price Range")
	doc.Table(md.TableSet{
		Header: []string{"Lowest", "Current", "Highest", "Volatility"},
		Rows: [][]string{{
			a.PriceRange.Lowest.String(),
			a.PriceRange.Current.String(),
			a.PriceRange.Highest.String(),
			a.Metrics.PriceVolatility.String(),
		}},
	})

	return doc.String()
}
