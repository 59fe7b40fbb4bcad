package commands

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/airwaylog/sleepdash/sheet"
)

const APP = "sleepdash"
const VERSION = "v0.2.0"

// Options are the global command line options, shared by all commands.
type Options struct {
	Debug bool
}

// Command is the interface implemented by the sleepdash subcommands.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(ctx context.Context, options *Options) error
}

// command holds the options common to every subcommand that talks to the
// worksheet.
type command struct {
	credentials string
	spreadsheet string
	worksheet   string
	ttl         time.Duration
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the service account 'credentials.json' file")
	flagset.StringVar(&c.spreadsheet, "spreadsheet", c.spreadsheet, "Spreadsheet ID. Defaults to the SLEEPDASH_SPREADSHEET environment variable")
	flagset.StringVar(&c.worksheet, "worksheet", c.worksheet, fmt.Sprintf("Worksheet name. Defaults to '%s'", DEFAULT_WORKSHEET))
	flagset.DurationVar(&c.ttl, "cache-ttl", c.ttl, "Lifetime of a cached load e.g. 60s, 5m")

	return flagset
}

// client resolves the spreadsheet/worksheet configuration (flags first,
// environment second) and connects.
func (c *command) client(ctx context.Context) (*sheet.Client, error) {
	spreadsheet := strings.TrimSpace(c.spreadsheet)
	if spreadsheet == "" {
		spreadsheet = strings.TrimSpace(os.Getenv(ENV_SPREADSHEET))
	}

	if spreadsheet == "" {
		return nil, fmt.Errorf("missing spreadsheet ID - use --spreadsheet or set %s", ENV_SPREADSHEET)
	}

	worksheet := strings.TrimSpace(c.worksheet)
	if worksheet == "" {
		worksheet = strings.TrimSpace(os.Getenv(ENV_WORKSHEET))
	}

	if worksheet == "" {
		worksheet = DEFAULT_WORKSHEET
	}

	config := sheet.Config{
		SpreadsheetID: spreadsheet,
		Worksheet:     worksheet,
		TTL:           c.ttl,
	}

	client, err := sheet.NewClient(ctx, config, sheet.DefaultSources(c.credentials)...)
	if err != nil {
		return nil, fmt.Errorf("Google Sheets connection error (%w)", err)
	}

	return client, nil
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})
}

func debugf(format string, args ...interface{}) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...interface{}) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...interface{}) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}

func errorf(format string, args ...interface{}) {
	log.Printf("%-5s %s", "ERROR", fmt.Sprintf(format, args...))
}
