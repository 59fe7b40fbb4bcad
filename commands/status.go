package commands

import (
	"context"
	"flag"
	"fmt"
)

var StatusCmd = Status{
	command: command{},
}

type Status struct {
	command
}

func (cmd *Status) Name() string {
	return "status"
}

func (cmd *Status) Description() string {
	return "Reports worksheet connectivity, row count and last modified time"
}

func (cmd *Status) Usage() string {
	return "--spreadsheet <ID>"
}

func (cmd *Status) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] status [options] --spreadsheet <ID>\n", APP)
	fmt.Println()
	fmt.Println("  Connects to the health log worksheet and reports the connection status")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sleepdash status --spreadsheet "1qc_8gnDFMkwnT3j2i_BFBWFqsLymroqVf-rrQuGzzOc"`)
	fmt.Println()
}

func (cmd *Status) FlagSet() *flag.FlagSet {
	return cmd.flagset("status")
}

func (cmd *Status) Execute(ctx context.Context, options *Options) error {
	cmd.debug = options.Debug

	client, err := cmd.client(ctx)
	if err != nil {
		return err
	}

	status, err := client.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  spreadsheet:   %s\n", status.Title)
	fmt.Printf("  worksheet:     %s\n", status.Worksheet)
	fmt.Printf("  rows:          %v\n", status.Rows)
	fmt.Printf("  last modified: %s\n", status.LastModified.Local().Format("2006-01-02 15:04:05"))
	fmt.Println()

	return nil
}
