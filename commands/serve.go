package commands

import (
	"context"
	"flag"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/airwaylog/sleepdash/commands/html"
)

var ServeCmd = Serve{
	command: command{},

	port:    DEFAULT_PORT,
	refresh: 0,
}

type Serve struct {
	command
	port    int
	refresh int
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs the HTTP dashboard for the health log"
}

func (cmd *Serve) Usage() string {
	return "--spreadsheet <ID> [--port <port>] [--refresh <seconds>]"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] serve [options] --spreadsheet <ID>\n", APP)
	fmt.Println()
	fmt.Println("  Serves the dashboard, data entry form, correlation and connection status views")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sleepdash serve --spreadsheet "1qc_8gnDFMkwnT3j2i_BFBWFqsLymroqVf-rrQuGzzOc" --port 8000 --refresh 300`)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("serve")

	flagset.IntVar(&cmd.port, "port", cmd.port, fmt.Sprintf("HTTP port. Defaults to %v", DEFAULT_PORT))
	flagset.IntVar(&cmd.refresh, "refresh", cmd.refresh, "Dashboard re-render interval in seconds. Defaults to 0 (disabled)")

	return flagset
}

func (cmd *Serve) Execute(ctx context.Context, options *Options) error {
	cmd.debug = options.Debug

	client, err := cmd.client(ctx)
	if err != nil {
		return err
	}

	templates, err := loadTemplates()
	if err != nil {
		return err
	}

	d := dashboard{
		client:    client,
		templates: templates,
		refresh:   cmd.refresh,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", d.getDashboard)
	mux.HandleFunc("GET /entry", d.getEntry)
	mux.HandleFunc("POST /entry", d.postEntry)
	mux.HandleFunc("GET /correlation", d.getCorrelation)
	mux.HandleFunc("GET /status", d.getStatus)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cmd.port),
		Handler: mux,
	}

	failed := make(chan error)

	go func() {
		infof("Dashboard listening on %s", srv.Addr)

		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			failed <- err
		}
	}()

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)

	select {
	case err := <-failed:
		return err

	case <-interrupt:
		infof("Shutting down")
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdown)
}

// loadTemplates parses each page against its own clone of the shared layout
// so that the per-page 'content' definitions don't collide.
func loadTemplates() (map[string]*template.Template, error) {
	pages := []string{"dashboard.html", "entry.html", "correlation.html", "status.html"}
	templates := map[string]*template.Template{}

	for _, page := range pages {
		t, err := template.ParseFS(html.HTML, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s (%w)", page, err)
		}

		templates[page] = t
	}

	return templates, nil
}
