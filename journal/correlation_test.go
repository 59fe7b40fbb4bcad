package journal

import (
	"errors"
	"math"
	"testing"
)

func fixture(rows [][]interface{}) *Table {
	data := append([][]interface{}{
		[]interface{}{"date", "ahi", "leak", "coherence", "energy", "notes"},
	}, rows...)

	table, err := NewTable(data)
	if err != nil {
		panic(err)
	}

	return table
}

func TestCorrelate(t *testing.T) {
	table := fixture([][]interface{}{
		[]interface{}{"2024-01-01", "3.5", "10", "80", "7", ""},
		[]interface{}{"2024-01-02", "2.1", "8", "74", "6", ""},
		[]interface{}{"2024-01-03", "4.0", "12", "68", "5", ""},
		[]interface{}{"2024-01-04", "1.2", "6", "85", "8", ""},
		[]interface{}{"2024-01-05", "2.8", "9", "77", "7", ""},
		[]interface{}{"2024-01-06", "5.1", "15", "60", "4", ""},
		[]interface{}{"2024-01-07", "0.9", "5", "88", "9", ""},
	})

	correlation, err := Correlate(table)
	if err != nil {
		t.Fatalf("Unexpected error returned from Correlate (%v)", err)
	}

	if len(correlation.Matrix) != 4 {
		t.Fatalf("Incorrect matrix size - expected 4 rows, got %v", len(correlation.Matrix))
	}

	for i, row := range correlation.Matrix {
		if len(row) != 4 {
			t.Fatalf("Incorrect matrix size - expected 4 columns in row %v, got %v", i, len(row))
		}

		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("Non-finite correlation at [%v][%v]: %v", i, j, v)
			}

			if v < -1.0000001 || v > 1.0000001 {
				t.Errorf("Correlation at [%v][%v] outside [-1,1]: %v", i, j, v)
			}
		}

		if row[i] != 1.0 {
			t.Errorf("Incorrect diagonal at [%v][%v]\n   expected: %v\n   got:      %v\n", i, i, 1.0, row[i])
		}
	}

	if correlation.Matrix[0][1] != correlation.Matrix[1][0] {
		t.Errorf("Expected symmetric matrix, got %v and %v", correlation.Matrix[0][1], correlation.Matrix[1][0])
	}
}

func TestCorrelateWithPerfectlyCorrelatedColumns(t *testing.T) {
	table := fixture([][]interface{}{
		[]interface{}{"2024-01-01", "1", "2", "80", "7", ""},
		[]interface{}{"2024-01-02", "2", "4", "74", "6", ""},
		[]interface{}{"2024-01-03", "3", "6", "68", "5", ""},
		[]interface{}{"2024-01-04", "4", "8", "85", "8", ""},
		[]interface{}{"2024-01-05", "5", "10", "77", "7", ""},
		[]interface{}{"2024-01-06", "6", "12", "60", "4", ""},
		[]interface{}{"2024-01-07", "7", "14", "88", "9", ""},
	})

	correlation, err := Correlate(table)
	if err != nil {
		t.Fatalf("Unexpected error returned from Correlate (%v)", err)
	}

	if r := correlation.Matrix[0][1]; math.Abs(r-1.0) > 1e-9 {
		t.Errorf("Incorrect correlation for ahi/leak\n   expected: %v\n   got:      %v\n", 1.0, r)
	}
}

func TestCorrelateWithTooFewRows(t *testing.T) {
	table := fixture([][]interface{}{
		[]interface{}{"2024-01-01", "3.5", "10", "80", "7", ""},
		[]interface{}{"2024-01-02", "2.1", "8", "74", "6", ""},
		[]interface{}{"2024-01-03", "4.0", "12", "68", "5", ""},
		[]interface{}{"2024-01-04", "1.2", "6", "85", "8", ""},
		[]interface{}{"2024-01-05", "2.8", "9", "77", "7", ""},
		[]interface{}{"2024-01-06", "5.1", "15", "60", "4", ""},
	})

	if _, err := Correlate(table); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Expected ErrInsufficientData for 6 rows, got %v", err)
	}
}

func TestCorrelateWithUnusableColumn(t *testing.T) {
	table := fixture([][]interface{}{
		[]interface{}{"2024-01-01", "3.5", "10", "", "7", ""},
		[]interface{}{"2024-01-02", "2.1", "8", "", "6", ""},
		[]interface{}{"2024-01-03", "4.0", "12", "", "5", ""},
		[]interface{}{"2024-01-04", "1.2", "6", "", "8", ""},
		[]interface{}{"2024-01-05", "2.8", "9", "", "7", ""},
		[]interface{}{"2024-01-06", "5.1", "15", "", "4", ""},
		[]interface{}{"2024-01-07", "0.9", "5", "", "9", ""},
	})

	if _, err := Correlate(table); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Expected ErrInsufficientData for unusable coherence column, got %v", err)
	}
}

func TestCorrelateWithNilTable(t *testing.T) {
	if _, err := Correlate(nil); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Expected ErrInsufficientData for nil table, got %v", err)
	}
}
