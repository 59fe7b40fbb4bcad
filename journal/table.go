package journal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Columns is the worksheet header contract, in fixed order.
var Columns = []string{"date", "ahi", "leak", "coherence", "energy", "notes"}

// ErrNoDateColumn is returned when the header row has no recognizable date column.
var ErrNoDateColumn = fmt.Errorf("no recognizable 'date' column in header row")

// dateAliases are the accepted (normalised) header names for the date column.
var dateAliases = []string{"date", "day", "entrydate", "logdate"}

// dateFormats are tried in order when coercing a date cell. The worksheet is
// hand-edited so older rows occasionally use slash separators.
var dateFormats = []string{"2006-01-02", "2006/01/02", "02/01/2006"}

// Row is a single health log entry as loaded from the worksheet. Date and the
// numeric metrics are nil where the stored cell could not be parsed.
type Row struct {
	Date      *time.Time
	AHI       *float64
	Leak      *float64
	Coherence *float64
	Energy    *int
	Notes     string
}

// Table is the in-memory form of the worksheet - always exactly the six
// expected columns, rows sorted by date in descending order.
type Table struct {
	Header []string
	Rows   []Row
}

// NewTable builds a Table from raw worksheet values (header row first). An
// empty or header-only sheet yields a zero-row table. Cells that do not parse
// become nil, never an error - the only fatal condition is a header row with
// no recognizable date column.
func NewTable(values [][]interface{}) (*Table, error) {
	table := Table{
		Header: Columns,
		Rows:   []Row{},
	}

	if len(values) == 0 {
		return &table, nil
	}

	// .. build index
	index := map[string]int{}
	for i, v := range values[0] {
		k := normalise(cell(v))
		if _, ok := index[k]; !ok {
			index[k] = i
		}
	}

	date := -1
	for _, alias := range dateAliases {
		if ix, ok := index[alias]; ok {
			date = ix
			break
		}
	}

	if date < 0 {
		return nil, ErrNoDateColumn
	}

	// ... records
	for _, record := range values[1:] {
		row := Row{
			Date:      parseDate(field(record, date)),
			AHI:       parseFloat(field(record, lookup(index, "ahi"))),
			Leak:      parseFloat(field(record, lookup(index, "leak"))),
			Coherence: parseFloat(field(record, lookup(index, "coherence"))),
			Energy:    parseInt(field(record, lookup(index, "energy"))),
			Notes:     strings.TrimSpace(field(record, lookup(index, "notes"))),
		}

		table.Rows = append(table.Rows, row)
	}

	// ... sort by date, newest first, undated rows last
	sort.SliceStable(table.Rows, func(i, j int) bool {
		p := table.Rows[i].Date
		q := table.Rows[j].Date

		switch {
		case p == nil:
			return false
		case q == nil:
			return true
		default:
			return q.Before(*p)
		}
	})

	return &table, nil
}

func lookup(index map[string]int, column string) int {
	if ix, ok := index[column]; ok {
		return ix
	}

	return -1
}

func field(record []interface{}, ix int) string {
	if ix < 0 || ix >= len(record) {
		return ""
	}

	return cell(record[ix])
}

func cell(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value

	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)

	default:
		return fmt.Sprintf("%v", v)
	}
}

func parseDate(v string) *time.Time {
	s := strings.TrimSpace(v)

	for _, format := range dateFormats {
		if date, err := time.ParseInLocation(format, s, time.Local); err == nil {
			return &date
		}
	}

	return nil
}

func parseFloat(v string) *float64 {
	if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		return &f
	}

	return nil
}

func parseInt(v string) *int {
	s := strings.TrimSpace(v)

	if i, err := strconv.Atoi(s); err == nil {
		return &i
	}

	// hand-entered sheets store the occasional '7.0'
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		i := int(f)
		return &i
	}

	return nil
}

func normalise(v string) string {
	s := strings.TrimPrefix(v, "\ufeff")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")

	return strings.ToLower(strings.TrimSpace(s))
}
