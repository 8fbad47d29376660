package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/coinfolio"
	md "github.com/nao1215/markdown"
)

// FundingMarkdown renders the funding report to a markdown string.
func FundingMarkdown(r *coinfolio.FundingReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Funding")
	doc.PlainText(fmt.Sprintf("Net investment: %s", r.NetInvestment))

	row := func(flow coinfolio.FundingFlow) []string {
		return []string{
			fmt.Sprintf("%d", flow.Count),
			flow.Fiat.String(),
			flow.Crypto.String(),
			flow.Total.String(),
		}
	}
	doc.Table(md.TableSet{
		Header: []string{"Direction", "Records", "Fiat", "Crypto", "Total"},
		Rows: [][]string{
			append([]string{"Deposits"}, row(r.Deposits)...),
			append([]string{"Withdrawals"}, row(r.Withdrawals)...),
		},
	})

	return doc.String()
}
