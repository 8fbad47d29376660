// Package cmd implements the cfs CLI application.
package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/binance"
	"github.com/etnz/coinfolio/mexc"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&assetCmd{}, "reports")
	c.Register(&portfolioCmd{}, "reports")
	c.Register(&fundingCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	quote = flag.String("quote", coinfolio.DefaultQuote, "Quote currency every report is expressed in")

	binanceKey    = flag.String("binance-api-key", os.Getenv("BINANCE_API_KEY"), "Binance API key (defaults to $BINANCE_API_KEY)")
	binanceSecret = flag.String("binance-api-secret", os.Getenv("BINANCE_API_SECRET"), "Binance API secret (defaults to $BINANCE_API_SECRET)")
	mexcKey       = flag.String("mexc-api-key", os.Getenv("MEXC_API_KEY"), "MEXC API key (defaults to $MEXC_API_KEY)")
	mexcSecret    = flag.String("mexc-api-secret", os.Getenv("MEXC_API_SECRET"), "MEXC API secret (defaults to $MEXC_API_SECRET)")
)

// exchanges returns a client per configured exchange account.
func exchanges() ([]coinfolio.Exchange, error) {
	var list []coinfolio.Exchange
	if *binanceKey != "" {
		list = append(list, binance.New(*binanceKey, *binanceSecret))
	}
	if *mexcKey != "" {
		list = append(list, mexc.New(*mexcKey, *mexcSecret))
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no exchange configured, set at least BINANCE_API_KEY or MEXC_API_KEY")
	}
	return list, nil
}

// fundingSources returns the configured accounts that can report
// deposits and withdrawals.
func fundingSources() ([]coinfolio.FundingSource, error) {
	var list []coinfolio.FundingSource
	if *binanceKey != "" {
		list = append(list, binance.New(*binanceKey, *binanceSecret))
	}
	if *mexcKey != "" {
		list = append(list, mexc.New(*mexcKey, *mexcSecret))
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no exchange configured, set at least BINANCE_API_KEY or MEXC_API_KEY")
	}
	return list, nil
}

// printMarkdown renders markdown for the terminal. On any rendering
// trouble the raw markdown is still printed.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// printJSON writes v as indented JSON on stdout.
func printJSON(v any) subcommands.ExitStatus {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}
