package commands

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/airwaylog/sleepdash/journal"
	"github.com/airwaylog/sleepdash/sheet"
)

// dashboard holds the HTTP handler state for the 'serve' command. It keeps
// the last successfully loaded table so that a failed load degrades to stale
// data with a warning rather than an empty page.
type dashboard struct {
	client    *sheet.Client
	templates map[string]*template.Template
	refresh   int

	guard sync.Mutex
	last  *journal.Table
}

type page struct {
	Refresh     int
	Message     string
	Rows        []entryView
	Summary     *summaryView
	Date        string
	Correlation *correlationView
	Status      *statusView
}

type entryView struct {
	Date      string
	AHI       string
	Leak      string
	Coherence string
	Energy    string
	Notes     string
}

type summaryView struct {
	Days      int
	AHI       string
	Leak      string
	Coherence string
	Energy    string
}

type correlationView struct {
	Metrics []string
	Cells   []correlationRow
}

type correlationRow struct {
	Metric string
	Values []string
}

type statusView struct {
	Title        string
	Worksheet    string
	Rows         int
	LastModified string
}

func (d *dashboard) getDashboard(w http.ResponseWriter, r *http.Request) {
	table, message := d.load(r)

	p := page{
		Refresh: d.refresh,
		Message: message,
	}

	if table != nil {
		p.Rows = views(table, 30)
		p.Summary = summarise(table, 7)
	}

	d.render(w, "dashboard.html", p)
}

func (d *dashboard) getEntry(w http.ResponseWriter, r *http.Request) {
	p := page{
		Refresh: 0,
		Date:    time.Now().Format("2006-01-02"),
	}

	d.render(w, "entry.html", p)
}

func (d *dashboard) postEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := form(r)
	if err == nil {
		err = d.client.Append(r.Context(), entry)
	}

	if err != nil {
		warnf("%v", err)

		p := page{
			Message: fmt.Sprintf("entry not saved (%v)", err),
			Date:    time.Now().Format("2006-01-02"),
		}

		d.render(w, "entry.html", p)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (d *dashboard) getCorrelation(w http.ResponseWriter, r *http.Request) {
	table, message := d.load(r)

	p := page{
		Refresh: d.refresh,
		Message: message,
	}

	if table != nil {
		correlation, err := journal.Correlate(table)

		switch {
		case errors.Is(err, journal.ErrInsufficientData):
			p.Message = "insufficient data - at least 7 logged days are needed for a correlation"

		case err != nil:
			p.Message = fmt.Sprintf("unable to compute correlation (%v)", err)

		default:
			p.Correlation = correlations(correlation)
		}
	}

	d.render(w, "correlation.html", p)
}

func (d *dashboard) getStatus(w http.ResponseWriter, r *http.Request) {
	p := page{
		Refresh: d.refresh,
	}

	status, err := d.client.Status(r.Context())
	if err != nil {
		warnf("%v", err)
		p.Message = fmt.Sprintf("unable to fetch worksheet status (%v)", err)
	} else {
		p.Status = &statusView{
			Title:        status.Title,
			Worksheet:    status.Worksheet,
			Rows:         status.Rows,
			LastModified: status.LastModified.Local().Format("2006-01-02 15:04:05"),
		}
	}

	d.render(w, "status.html", p)
}

// load returns the current table, falling back to the last successfully
// loaded one (with a user-visible message) when the worksheet is unreachable.
func (d *dashboard) load(r *http.Request) (*journal.Table, string) {
	table, err := d.client.Load(r.Context())
	if err != nil {
		warnf("%v", err)

		d.guard.Lock()
		defer d.guard.Unlock()

		return d.last, fmt.Sprintf("unable to load health log, showing last known data (%v)", err)
	}

	d.guard.Lock()
	defer d.guard.Unlock()

	d.last = table

	return table, ""
}

func (d *dashboard) render(w http.ResponseWriter, name string, data page) {
	t, ok := d.templates[name]
	if !ok {
		http.Error(w, "internal error formatting page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := t.Execute(w, data); err != nil {
		errorf("error rendering %s (%v)", name, err)
	}
}

func form(r *http.Request) (journal.Entry, error) {
	entry := journal.Entry{}

	if err := r.ParseForm(); err != nil {
		return entry, err
	}

	get := func(field string) string {
		return strings.TrimSpace(r.PostFormValue(field))
	}

	date, err := time.ParseInLocation("2006-01-02", get("date"), time.Local)
	if err != nil {
		return entry, fmt.Errorf("invalid date '%s' - expected yyyy-mm-dd", get("date"))
	}

	ahi, err := strconv.ParseFloat(get("ahi"), 64)
	if err != nil {
		return entry, fmt.Errorf("invalid AHI '%s'", get("ahi"))
	}

	leak, err := strconv.ParseFloat(get("leak"), 64)
	if err != nil {
		return entry, fmt.Errorf("invalid leak rate '%s'", get("leak"))
	}

	coherence, err := strconv.ParseFloat(get("coherence"), 64)
	if err != nil {
		return entry, fmt.Errorf("invalid coherence '%s'", get("coherence"))
	}

	energy, err := strconv.Atoi(get("energy"))
	if err != nil {
		return entry, fmt.Errorf("invalid energy '%s'", get("energy"))
	}

	entry = journal.Entry{
		Date:      date,
		AHI:       ahi,
		Leak:      leak,
		Coherence: coherence,
		Energy:    energy,
		Notes:     get("notes"),
	}

	return entry, entry.Validate()
}

func views(table *journal.Table, limit int) []entryView {
	rows := []entryView{}

	for _, row := range table.Rows {
		if len(rows) >= limit {
			break
		}

		rows = append(rows, entryView{
			Date:      orDash(fmtDate(row.Date)),
			AHI:       orDash(fmtFloat(row.AHI)),
			Leak:      orDash(fmtFloat(row.Leak)),
			Coherence: orDash(fmtFloat(row.Coherence)),
			Energy:    orDash(fmtInt(row.Energy)),
			Notes:     row.Notes,
		})
	}

	return rows
}

// summarise averages the numeric metrics over the most recent 'days' dated
// rows.
func summarise(table *journal.Table, days int) *summaryView {
	rows := []journal.Row{}
	for _, row := range table.Rows {
		if row.Date != nil && len(rows) < days {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	ahi := mean(rows, func(r journal.Row) *float64 { return r.AHI })
	leak := mean(rows, func(r journal.Row) *float64 { return r.Leak })
	coherence := mean(rows, func(r journal.Row) *float64 { return r.Coherence })
	energy := mean(rows, func(r journal.Row) *float64 {
		if r.Energy == nil {
			return nil
		}

		v := float64(*r.Energy)
		return &v
	})

	return &summaryView{
		Days:      len(rows),
		AHI:       orDash(fmtMean(ahi)),
		Leak:      orDash(fmtMean(leak)),
		Coherence: orDash(fmtMean(coherence)),
		Energy:    orDash(fmtMean(energy)),
	}
}

func correlations(correlation *journal.Correlation) *correlationView {
	view := correlationView{
		Metrics: correlation.Metrics,
		Cells:   []correlationRow{},
	}

	for i, metric := range correlation.Metrics {
		row := correlationRow{
			Metric: metric,
			Values: []string{},
		}

		for _, v := range correlation.Matrix[i] {
			if math.IsNaN(v) {
				row.Values = append(row.Values, "-")
			} else {
				row.Values = append(row.Values, fmt.Sprintf("%.3f", v))
			}
		}

		view.Cells = append(view.Cells, row)
	}

	return &view
}

func mean(rows []journal.Row, value func(journal.Row) *float64) *float64 {
	sum := 0.0
	n := 0

	for _, row := range rows {
		if v := value(row); v != nil {
			sum += *v
			n++
		}
	}

	if n == 0 {
		return nil
	}

	m := sum / float64(n)

	return &m
}

func fmtDate(v *time.Time) string {
	if v == nil {
		return ""
	}

	return v.Format("2006-01-02")
}

func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fmtInt(v *int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(*v)
}

func fmtMean(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}

	return v
}
