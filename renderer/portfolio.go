package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/coinfolio"
	md "github.com/nao1215/markdown"
)

// PortfolioMarkdown renders the aggregated portfolio report to a
// markdown string.
func PortfolioMarkdown(p *coinfolio.PortfolioMetrics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")
	doc.PlainText(fmt.Sprintf("%d assets over %d trades", p.Assets, p.NumberOfTrades))

	doc.H2("Performance")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Current Value", p.CurrentValue.String()},
			{"Total Invested", p.TotalInvested.String()},
			{"Realized Profit", p.RealizedProfit.SignedString()},
			{"Unrealized Profit", p.UnrealizedProfit.SignedString()},
			{"Total Profit", p.TotalProfit.SignedString()},
			{"Total Fees", p.TotalFees.String()},
			{"ROI", p.TotalROI.SignedString()},
		},
	})

	doc.H2("Distribution")
	rows := make([][]string, 0, len(p.Distribution))
	for _, w := range p.Distribution {
		rows = append(rows, []string{w.Symbol, w.Value.String(), w.Percentage.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Asset", "Value", "Share"},
		Rows:   rows,
	})

	return doc.String()
}
