package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// TSV writes the table as tab-separated values, header row first. Cells that
// failed to parse on load are written as empty strings.
func (t *Table) TSV(f io.Writer) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	w.Write(t.Header)
	for _, row := range t.Rows {
		w.Write([]string{
			formatDate(row.Date),
			formatFloat(row.AHI),
			formatFloat(row.Leak),
			formatFloat(row.Coherence),
			formatInt(row.Energy),
			row.Notes,
		})
	}

	w.Flush()

	return w.Error()
}

func formatDate(v *time.Time) string {
	if v == nil {
		return ""
	}

	return v.Format("2006-01-02")
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(*v)
}
