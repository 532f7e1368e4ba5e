// Command qpf is the portfolio performance CLI.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/quantfolio/perf/cmd"
	"github.com/quantfolio/perf/docs"
)

func main() {
	installCompletion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// installCompletion wires shell completion. Complete() takes over and exits
// the process when invoked by the shell, so it runs before flag parsing.
func installCompletion() {
	topics, _ := docs.GetAllTopics()

	ledgerFlags := map[string]complete.Predictor{
		"l": predict.Files("*.jsonl"),
	}
	qpf := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"v":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"report": {Flags: map[string]complete.Predictor{
				"l":        predict.Files("*.jsonl"),
				"quotes":   predict.Files("*.jsonl"),
				"d":        predict.Nothing,
				"currency": predict.Nothing,
			}},
			"tx":  {Flags: ledgerFlags},
			"fmt": {Flags: ledgerFlags},
			"import": {Flags: map[string]complete.Predictor{
				"csv": predict.Files("*.csv"),
				"l":   predict.Files("*.jsonl"),
			}},
			"sample": {},
			"topic":  {Args: predict.Set(topics)},
		},
	}
	qpf.Complete("qpf")
}
