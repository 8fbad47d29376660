package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

// fundingCmd holds the flags for the 'funding' subcommand.
type fundingCmd struct {
	jsonOut bool
}

func (*fundingCmd) Name() string     { return "funding" }
func (*fundingCmd) Synopsis() string { return "deposits, withdrawals and net investment" }
func (*fundingCmd) Usage() string {
	return `cfs funding [-json]

  Sums the capital that ever entered and left the configured exchange
  accounts, split between fiat and crypto.
`
}

func (c *fundingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.jsonOut, "json", false, "Print the raw report as JSON")
}

func (c *fundingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sources, err := fundingSources()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var deposits, withdrawals []coinfolio.FundingRecord
	for _, s := range sources {
		in, err := s.Deposits(ctx)
		if err != nil {
			log.Printf("warning: cannot fetch %s deposits: %v", s.Name(), err)
		}
		out, err := s.Withdrawals(ctx)
		if err != nil {
			log.Printf("warning: cannot fetch %s withdrawals: %v", s.Name(), err)
		}
		deposits = append(deposits, in...)
		withdrawals = append(withdrawals, out...)
	}

	report := coinfolio.ComputeFunding(*quote, deposits, withdrawals)

	if c.jsonOut {
		return printJSON(report)
	}
	printMarkdown(renderer.FundingMarkdown(&report))
	return subcommands.ExitSuccess
}
