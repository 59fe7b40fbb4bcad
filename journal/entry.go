package journal

import (
	"fmt"
	"strconv"
	"time"
)

// Entry is a validated daily log entry, ready to be appended to the worksheet.
type Entry struct {
	Date      time.Time
	AHI       float64
	Leak      float64
	Coherence float64
	Energy    int
	Notes     string
}

func (e Entry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("missing entry date")
	}

	if e.AHI < 0 {
		return fmt.Errorf("invalid AHI %v - expected a non-negative value", e.AHI)
	}

	if e.Leak < 0 {
		return fmt.Errorf("invalid leak rate %v - expected a non-negative value", e.Leak)
	}

	if e.Energy < 1 || e.Energy > 10 {
		return fmt.Errorf("invalid energy %v - expected a value in the range 1-10", e.Energy)
	}

	return nil
}

// Record formats the entry as a worksheet row, one cell per column in the
// fixed column order. The date is stored as the literal string 'YYYY-MM-DD'.
func (e Entry) Record() []interface{} {
	return []interface{}{
		e.Date.Format("2006-01-02"),
		strconv.FormatFloat(e.AHI, 'f', -1, 64),
		strconv.FormatFloat(e.Leak, 'f', -1, 64),
		strconv.FormatFloat(e.Coherence, 'f', -1, 64),
		strconv.Itoa(e.Energy),
		e.Notes,
	}
}
