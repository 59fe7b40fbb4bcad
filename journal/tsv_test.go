package journal

import (
	"strings"
	"testing"
)

func TestTSV(t *testing.T) {
	expected := "date\tahi\tleak\tcoherence\tenergy\tnotes\n" +
		"2024-01-02\t2.1\t8\t74.5\t6\t\n" +
		"2024-01-01\t3.5\t10\t80\t7\tnew mask\n"

	table := Table{
		Header: Columns,
		Rows: []Row{
			{Date: date("2024-01-02"), AHI: float(2.1), Leak: float(8), Coherence: float(74.5), Energy: integer(6), Notes: ""},
			{Date: date("2024-01-01"), AHI: float(3.5), Leak: float(10), Coherence: float(80), Energy: integer(7), Notes: "new mask"},
		},
	}

	var f strings.Builder

	if err := table.TSV(&f); err != nil {
		t.Fatalf("Unexpected error returned from TSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, f.String())
	}
}

func TestTSVWithNullCells(t *testing.T) {
	expected := "date\tahi\tleak\tcoherence\tenergy\tnotes\n" +
		"2024-01-01\t3.5\t\t\t\t\n"

	table := Table{
		Header: Columns,
		Rows: []Row{
			{Date: date("2024-01-01"), AHI: float(3.5)},
		},
	}

	var f strings.Builder

	if err := table.TSV(&f); err != nil {
		t.Fatalf("Unexpected error returned from TSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, f.String())
	}
}

func TestTSVWithEmptyTable(t *testing.T) {
	expected := "date\tahi\tleak\tcoherence\tenergy\tnotes\n"

	table := Table{
		Header: Columns,
		Rows:   []Row{},
	}

	var f strings.Builder

	if err := table.TSV(&f); err != nil {
		t.Fatalf("Unexpected error returned from TSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, f.String())
	}
}
