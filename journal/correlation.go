package journal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned when the table has too few rows (or too few
// usable values) for a meaningful correlation.
var ErrInsufficientData = fmt.Errorf("insufficient data")

// minimum number of rows before a correlation is worth reporting
const minRows = 7

// Metrics are the numeric columns included in the correlation, in matrix order.
var Metrics = []string{"ahi", "leak", "coherence", "energy"}

// Correlation is the pairwise Pearson correlation matrix over the numeric
// metrics, indexed in Metrics order.
type Correlation struct {
	Metrics []string
	Matrix  [][]float64
}

// Correlate computes the pairwise Pearson correlation over the four numeric
// metrics. Each pair is computed over the rows where both values are present
// (pairwise-complete), so a sprinkling of unparseable cells does not void the
// whole matrix. Fewer than minRows rows, or a metric with no usable values at
// all, yields ErrInsufficientData.
func Correlate(t *Table) (*Correlation, error) {
	if t == nil || len(t.Rows) < minRows {
		return nil, ErrInsufficientData
	}

	columns := make([][]*float64, len(Metrics))
	for i := range Metrics {
		columns[i] = make([]*float64, len(t.Rows))
	}

	for i, row := range t.Rows {
		columns[0][i] = row.AHI
		columns[1][i] = row.Leak
		columns[2][i] = row.Coherence
		if row.Energy != nil {
			energy := float64(*row.Energy)
			columns[3][i] = &energy
		}
	}

	for _, column := range columns {
		if count(column) == 0 {
			return nil, ErrInsufficientData
		}
	}

	matrix := make([][]float64, len(Metrics))
	for i := range matrix {
		matrix[i] = make([]float64, len(Metrics))
		matrix[i][i] = 1.0
	}

	for i := 0; i < len(Metrics); i++ {
		for j := i + 1; j < len(Metrics); j++ {
			r := correlate(columns[i], columns[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return &Correlation{
		Metrics: Metrics,
		Matrix:  matrix,
	}, nil
}

func correlate(p, q []*float64) float64 {
	x := []float64{}
	y := []float64{}

	for i := range p {
		if p[i] != nil && q[i] != nil {
			x = append(x, *p[i])
			y = append(y, *q[i])
		}
	}

	if len(x) < 2 {
		return math.NaN()
	}

	return stat.Correlation(x, y, nil)
}

func count(column []*float64) int {
	n := 0
	for _, v := range column {
		if v != nil {
			n++
		}
	}

	return n
}
