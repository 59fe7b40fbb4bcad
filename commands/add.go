package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/airwaylog/sleepdash/journal"
)

var AddCmd = Add{
	command: command{},

	date:      time.Now().Format("2006-01-02"),
	ahi:       0,
	leak:      0,
	coherence: 0,
	energy:    0,
	notes:     "",
}

type Add struct {
	command
	date      string
	ahi       float64
	leak      float64
	coherence float64
	energy    int
	notes     string
}

func (cmd *Add) Name() string {
	return "add"
}

func (cmd *Add) Description() string {
	return "Appends a daily entry to the health log worksheet"
}

func (cmd *Add) Usage() string {
	return "--ahi <value> --leak <value> --coherence <value> --energy <1-10> [--date <yyyy-mm-dd>] [--notes <text>]"
}

func (cmd *Add) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] add [options] --ahi <value> --leak <value> --coherence <value> --energy <1-10>\n", APP)
	fmt.Println()
	fmt.Println("  Appends one daily entry to the health log worksheet. The date defaults to today")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sleepdash add --ahi 3.5 --leak 10 --coherence 80 --energy 7 --notes "new mask"`)
	fmt.Println(`    sleepdash add --date 2024-03-07 --ahi 3.5 --leak 10 --coherence 80 --energy 7`)
	fmt.Println()
}

func (cmd *Add) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("add")

	flagset.StringVar(&cmd.date, "date", cmd.date, "Entry date as yyyy-mm-dd. Defaults to today")
	flagset.Float64Var(&cmd.ahi, "ahi", cmd.ahi, "Apnea-hypopnea index (events/hour)")
	flagset.Float64Var(&cmd.leak, "leak", cmd.leak, "Mask leak rate")
	flagset.Float64Var(&cmd.coherence, "coherence", cmd.coherence, "HRV coherence score")
	flagset.IntVar(&cmd.energy, "energy", cmd.energy, "Subjective energy (1-10)")
	flagset.StringVar(&cmd.notes, "notes", cmd.notes, "Free text notes")

	return flagset
}

func (cmd *Add) Execute(ctx context.Context, options *Options) error {
	cmd.debug = options.Debug

	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(cmd.date), time.Local)
	if err != nil {
		return fmt.Errorf("invalid --date '%s' - expected yyyy-mm-dd", cmd.date)
	}

	entry := journal.Entry{
		Date:      date,
		AHI:       cmd.ahi,
		Leak:      cmd.leak,
		Coherence: cmd.coherence,
		Energy:    cmd.energy,
		Notes:     strings.TrimSpace(cmd.notes),
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	client, err := cmd.client(ctx)
	if err != nil {
		return err
	}

	if err := client.Append(ctx, entry); err != nil {
		return err
	}

	infof("Appended entry for %s to health log", entry.Date.Format("2006-01-02"))

	return nil
}
