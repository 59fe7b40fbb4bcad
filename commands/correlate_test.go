package commands

import (
	"math"
	"strings"
	"testing"

	"github.com/airwaylog/sleepdash/journal"
)

func TestFormatCorrelation(t *testing.T) {
	correlation := journal.Correlation{
		Metrics: []string{"ahi", "leak", "coherence", "energy"},
		Matrix: [][]float64{
			{1.0, 0.9, -0.5, math.NaN()},
			{0.9, 1.0, -0.25, 0.1},
			{-0.5, -0.25, 1.0, 0.75},
			{math.NaN(), 0.1, 0.75, 1.0},
		},
	}

	formatted := format(&correlation)
	lines := strings.Split(strings.TrimRight(formatted, "\n"), "\n")

	if len(lines) != 5 {
		t.Fatalf("Incorrect line count - expected %v, got %v:\n%s", 5, len(lines), formatted)
	}

	for _, metric := range correlation.Metrics {
		if !strings.Contains(lines[0], metric) {
			t.Errorf("Header line missing metric %s: %q", metric, lines[0])
		}
	}

	if !strings.Contains(lines[1], "1.000") || !strings.Contains(lines[1], "0.900") {
		t.Errorf("Incorrect 'ahi' row: %q", lines[1])
	}

	// NaN cells render as '-'
	if !strings.Contains(lines[1], "-") {
		t.Errorf("Expected '-' for NaN cell in 'ahi' row: %q", lines[1])
	}
}
