package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var GetCmd = Get{
	command: command{
		credentials: "",
		spreadsheet: "",
		worksheet:   "",
		ttl:         0,
		debug:       false,
	},

	file: time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves the health log from the Google Sheets worksheet and stores it to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "--spreadsheet <ID> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --spreadsheet <ID> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the health log worksheet to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sleepdash --debug get --spreadsheet "1qc_8gnDFMkwnT3j2i_BFBWFqsLymroqVf-rrQuGzzOc" \`)
	fmt.Println(`                          --worksheet "daily_manual_entry" \`)
	fmt.Println(`                          --file "sleeplog.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(ctx context.Context, options *Options) error {
	cmd.debug = options.Debug

	client, err := cmd.client(ctx)
	if err != nil {
		return err
	}

	table, err := client.Load(ctx)
	if err != nil {
		return fmt.Errorf("unable to load health log (%w)", err)
	}

	if cmd.debug {
		debugf("Loaded %v rows from worksheet", len(table.Rows))
	}

	tmp, err := os.CreateTemp(os.TempDir(), "sleeplog")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := table.TSV(tmp); err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	tmp.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	infof("Retrieved health log to file %s", cmd.file)

	return nil
}
