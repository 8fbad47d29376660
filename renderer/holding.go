package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/coinfolio"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders the valued balance sheets of one or more
// exchange accounts to a single markdown document.
func HoldingsMarkdown(reports ...*coinfolio.HoldingReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")
	for _, r := range reports {
		doc.H2(fmt.Sprintf("%s: %s", r.Exchange, r.TotalValue))

		rows := make([][]string, 0, len(r.Holdings))
		for _, h := range r.Holdings {
			rows = append(rows, []string{h.Asset, h.Quantity.String(), h.Price.String(), h.Value.String()})
		}
		doc.Table(md.TableSet{
			Header: []string{"Asset", "Quantity", "Price", "Value"},
			Rows:   rows,
		})
	}

	return doc.String()
}
