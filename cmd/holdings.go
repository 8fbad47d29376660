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

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	jsonOut bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "valued balances per exchange account" }
func (*holdingsCmd) Usage() string {
	return `cfs holdings [-json]

  Lists every balance held on the configured exchanges, valued at the
  current market price.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.jsonOut, "json", false, "Print the raw report as JSON")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	list, err := exchanges()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var reports []*coinfolio.HoldingReport
	for _, x := range list {
		report, err := coinfolio.CollectHoldings(ctx, x, *quote)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error collecting holdings: %v\n", err)
			return subcommands.ExitFailure
		}
		reports = append(reports, report)
	}

	if c.jsonOut {
		return printJSON(reports)
	}
	printMarkdown(renderer.HoldingsMarkdown(reports...))
	return subcommands.ExitSuccess
}
