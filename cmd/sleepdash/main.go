package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/airwaylog/sleepdash/commands"
)

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.GetCmd,
	&commands.AddCmd,
	&commands.CorrelateCmd,
	&commands.StatusCmd,
	&commands.ServeCmd,
}

var options = commands.Options{
	Debug: false,
}

func main() {
	godotenv.Load()

	flag.Usage = usage
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	args := flag.Args()

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	if args[0] == "help" {
		help(args[1:])
		return
	}

	cmd := find(args[0])
	if cmd == nil {
		fmt.Printf("\nInvalid command '%s'\n\n", args[0])
		usage()
		os.Exit(1)
	}

	cmd.FlagSet().Parse(args[1:])

	if err := cmd.Execute(context.Background(), &options); err != nil {
		fmt.Printf("\nERROR: %v\n\n", err)
		os.Exit(1)
	}
}

func find(name string) commands.Command {
	for _, cmd := range cli {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

func help(args []string) {
	if len(args) > 0 {
		if cmd := find(args[0]); cmd != nil {
			cmd.Help()
			return
		}

		fmt.Printf("\nInvalid command '%s'\n\n", args[0])
	}

	usage()
}

func usage() {
	fmt.Println()
	fmt.Println("  Usage: sleepdash [--debug] <command> [options]")
	fmt.Println()
	fmt.Println("  Commands:")

	for _, cmd := range cli {
		fmt.Printf("    %-10s %s\n", cmd.Name(), cmd.Description())
	}

	fmt.Println()
	fmt.Println("  Use 'sleepdash help <command>' for command options")
	fmt.Println()
}
