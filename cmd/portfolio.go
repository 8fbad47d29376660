package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

// portfolioCmd holds the flags for the 'portfolio' subcommand.
type portfolioCmd struct {
	min     float64
	jsonOut bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "aggregated portfolio performance report" }
func (*portfolioCmd) Usage() string {
	return `cfs portfolio [-min <value>] [-json]

  Aggregates the asset reports of every configured exchange into one
  portfolio report with totals, ROI and value distribution.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.min, "min", coinfolio.DefaultMinAssetValue, "Ignore assets worth less than this, in quote units")
	f.BoolVar(&c.jsonOut, "json", false, "Print the raw report as JSON")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	list, err := exchanges()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	assets := coinfolio.CollectAll(ctx, *quote, list...)
	portfolio := coinfolio.ComputePortfolioMetrics(assets, coinfolio.M(c.min, *quote))

	if c.jsonOut {
		return printJSON(portfolio)
	}
	printMarkdown(renderer.PortfolioMarkdown(&portfolio))
	return subcommands.ExitSuccess
}
