package sheet

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/airwaylog/sleepdash/journal"
)

// DefaultTTL is the default lifetime of a cached Load result.
const DefaultTTL = 60 * time.Second

// Config identifies the one spreadsheet/worksheet pair the client talks to,
// and how long a loaded table may be served from cache.
type Config struct {
	SpreadsheetID string
	Worksheet     string
	TTL           time.Duration
}

// values is the slice of the Sheets API the client consumes.
type values interface {
	get(ctx context.Context, spreadsheetID, area string) ([][]interface{}, error)
	append(ctx context.Context, spreadsheetID, area string, row []interface{}) error
}

// Client is the data access layer for the health log worksheet. It caches the
// last loaded table for the configured TTL and clears the cache after a
// successful append. Construct one and pass it by reference - methods are safe
// for concurrent use by the dashboard handlers.
type Client struct {
	config Config
	api    values
	sheets *sheets.Service
	drive  *drive.Service

	guard   sync.Mutex
	cached  *journal.Table
	fetched time.Time
	now     func() time.Time
}

// Status is a snapshot of worksheet connectivity for the 'status' command and
// the dashboard connection view.
type Status struct {
	Title        string
	Worksheet    string
	Rows         int
	LastModified time.Time
}

// NewClient resolves credentials (ordered sources, first match wins) and
// builds an authenticated client for the configured worksheet.
func NewClient(ctx context.Context, config Config, sources ...Source) (*Client, error) {
	if strings.TrimSpace(config.SpreadsheetID) == "" {
		return nil, fmt.Errorf("missing spreadsheet ID")
	}

	if strings.TrimSpace(config.Worksheet) == "" {
		return nil, fmt.Errorf("missing worksheet name")
	}

	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}

	credentials, err := Credentials(sources...)
	if err != nil {
		return nil, err
	}

	client := credentials.Client(ctx)

	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets client (%w)", err)
	}

	gdrive, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Drive client (%w)", err)
	}

	return &Client{
		config: config,
		api:    &googleSheets{service},
		sheets: service,
		drive:  gdrive,
		now:    time.Now,
	}, nil
}

// Load returns the health log as a table with the six fixed columns, rows
// sorted by date in descending order. The result is cached - a Load within
// TTL of the previous fetch is served from memory.
func (c *Client) Load(ctx context.Context) (*journal.Table, error) {
	c.guard.Lock()
	defer c.guard.Unlock()

	if c.cached != nil && c.now().Sub(c.fetched) < c.config.TTL {
		return c.cached, nil
	}

	rows, err := c.api.get(ctx, c.config.SpreadsheetID, c.config.Worksheet)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from worksheet (%w)", err)
	}

	table, err := journal.NewTable(rows)
	if err != nil {
		return nil, err
	}

	c.cached = table
	c.fetched = c.now()

	return table, nil
}

// Append validates the entry and appends it as one row to the worksheet. The
// cached table is cleared on success. Appends are not transactional -
// concurrent appends from two clients may interleave arbitrarily, which is
// acceptable for a single-user tool.
func (c *Client) Append(ctx context.Context, entry journal.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	if err := c.api.append(ctx, c.config.SpreadsheetID, c.config.Worksheet, entry.Record()); err != nil {
		return fmt.Errorf("unable to append row to worksheet (%w)", err)
	}

	c.Invalidate()

	return nil
}

// Invalidate discards the cached table so that the next Load re-fetches.
func (c *Client) Invalidate() {
	c.guard.Lock()
	defer c.guard.Unlock()

	c.cached = nil
}

// Status fetches the spreadsheet metadata, verifies the configured worksheet
// exists and reports the row count and last modified time.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	spreadsheet, err := c.sheets.Spreadsheets.Get(c.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch spreadsheet (%w)", err)
	}

	sheet, err := worksheet(spreadsheet, c.config.Worksheet)
	if err != nil {
		return nil, err
	}

	table, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}

	modified, err := c.LastModified(ctx)
	if err != nil {
		return nil, err
	}

	return &Status{
		Title:        spreadsheet.Properties.Title,
		Worksheet:    sheet.Properties.Title,
		Rows:         len(table.Rows),
		LastModified: modified,
	}, nil
}

// LastModified returns the timestamp of the newest revision of the
// spreadsheet file.
func (c *Client) LastModified(ctx context.Context) (time.Time, error) {
	page := ""
	latest := time.Time{}

	for {
		call := drive.NewRevisionsService(c.drive).List(c.config.SpreadsheetID).Fields("nextPageToken", "revisions(id,modifiedTime)")
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Context(ctx).Do()
		if err != nil {
			return time.Time{}, fmt.Errorf("unable to list spreadsheet revisions (%w)", err)
		}

		for _, revision := range revisions.Revisions {
			datetime, err := time.Parse(time.RFC3339, revision.ModifiedTime)
			if err != nil {
				return time.Time{}, err
			}

			if latest.Before(datetime) {
				latest = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.IsZero() {
		return time.Time{}, fmt.Errorf("unable to identify latest revision for spreadsheet %s", c.config.SpreadsheetID)
	}

	return latest, nil
}

func worksheet(spreadsheet *sheets.Spreadsheet, name string) (*sheets.Sheet, error) {
	for _, sheet := range spreadsheet.Sheets {
		if strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(name)) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet '%s'", name)
}

// googleSheets adapts *sheets.Service to the values interface.
type googleSheets struct {
	service *sheets.Service
}

func (g *googleSheets) get(ctx context.Context, spreadsheetID, area string) ([][]interface{}, error) {
	response, err := g.service.Spreadsheets.Values.Get(spreadsheetID, area).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return response.Values, nil
}

// append uses RAW input so that the literal 'YYYY-MM-DD' date string is
// stored as entered rather than re-interpreted by the spreadsheet.
func (g *googleSheets) append(ctx context.Context, spreadsheetID, area string, row []interface{}) error {
	rq := sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err := g.service.Spreadsheets.Values.Append(spreadsheetID, area, &rq).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()

	return err
}
