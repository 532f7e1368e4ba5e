package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/quantfolio/perf"
)

type sampleCmd struct{}

func (*sampleCmd) Name() string     { return "sample" }
func (*sampleCmd) Synopsis() string { return "print a sample CSV transaction file" }
func (*sampleCmd) Usage() string {
	return `qpf sample > sample.csv

  Prints a small CSV transaction file in the format accepted by 'qpf import'.
`
}

func (c *sampleCmd) SetFlags(f *flag.FlagSet) {}

func (c *sampleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	os.Stdout.Write(perf.SampleCSV())
	return subcommands.ExitSuccess
}
