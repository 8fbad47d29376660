package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/coinfolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// shell completion, a no-op outside of the completion protocol
	completion().Complete("cfs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"holdings":  {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
			"asset":     {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
			"portfolio": {Flags: map[string]complete.Predictor{"json": predict.Nothing, "min": predict.Something}},
			"funding":   {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
			"topic":     {Args: predict.Set{"readme", "glossary", "metrics", "fifo", "*"}},
			"assist":    {},
			"help":      {},
			"flags":     {},
		},
	}
}
