package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"strings"

	"github.com/airwaylog/sleepdash/journal"
)

var CorrelateCmd = Correlate{
	command: command{},
}

type Correlate struct {
	command
}

func (cmd *Correlate) Name() string {
	return "correlate"
}

func (cmd *Correlate) Description() string {
	return "Computes the pairwise Pearson correlation matrix over the numeric health metrics"
}

func (cmd *Correlate) Usage() string {
	return "--spreadsheet <ID>"
}

func (cmd *Correlate) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] correlate [options] --spreadsheet <ID>\n", APP)
	fmt.Println()
	fmt.Println("  Computes the pairwise Pearson correlation over AHI, leak rate, coherence and energy")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sleepdash correlate --spreadsheet "1qc_8gnDFMkwnT3j2i_BFBWFqsLymroqVf-rrQuGzzOc"`)
	fmt.Println()
}

func (cmd *Correlate) FlagSet() *flag.FlagSet {
	return cmd.flagset("correlate")
}

func (cmd *Correlate) Execute(ctx context.Context, options *Options) error {
	cmd.debug = options.Debug

	client, err := cmd.client(ctx)
	if err != nil {
		return err
	}

	table, err := client.Load(ctx)
	if err != nil {
		return fmt.Errorf("unable to load health log (%w)", err)
	}

	correlation, err := journal.Correlate(table)
	if errors.Is(err, journal.ErrInsufficientData) {
		fmt.Printf("\n  insufficient data - at least 7 logged days are needed for a correlation\n\n")
		return nil
	} else if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(format(correlation))
	fmt.Println()

	return nil
}

func format(correlation *journal.Correlation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %-10s", "")
	for _, metric := range correlation.Metrics {
		fmt.Fprintf(&b, "  %10s", metric)
	}
	fmt.Fprintln(&b)

	for i, metric := range correlation.Metrics {
		fmt.Fprintf(&b, "  %-10s", metric)
		for _, v := range correlation.Matrix[i] {
			if math.IsNaN(v) {
				fmt.Fprintf(&b, "  %10s", "-")
			} else {
				fmt.Fprintf(&b, "  %10.3f", v)
			}
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}
