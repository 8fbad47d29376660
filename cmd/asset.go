package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

// assetCmd holds the flags for the 'asset' subcommand.
type assetCmd struct {
	jsonOut bool
}

func (*assetCmd) Name() string     { return "asset" }
func (*assetCmd) Synopsis() string { return "cost basis and performance report per asset" }
func (*assetCmd) Usage() string {
	return `cfs asset [-json] [SYMBOL...]

  Computes the full metrics report of each held asset: cost basis,
  realized and unrealized profits, trading activity and price range.
  With symbols given, only those assets are reported.
`
}

func (c *assetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.jsonOut, "json", false, "Print the raw report as JSON")
}

func (c *assetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	list, err := exchanges()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	assets := coinfolio.CollectAll(ctx, *quote, list...)

	if f.NArg() > 0 {
		wanted := make(map[string]bool, f.NArg())
		for _, symbol := range f.Args() {
			wanted[strings.ToUpper(symbol)] = true
		}
		filtered := assets[:0]
		for _, a := range assets {
			if wanted[a.Symbol] {
				filtered = append(filtered, a)
			}
		}
		assets = filtered
	}

	if len(assets) == 0 {
		fmt.Fprintln(os.Stderr, "No matching asset held on the configured exchanges.")
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		return printJSON(assets)
	}
	for i := range assets {
		printMarkdown(renderer.AssetMarkdown(&assets[i]))
	}
	return subcommands.ExitSuccess
}
