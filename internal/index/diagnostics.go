package index

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DiagnosticsSummary compares the two approximations' return series against
// the reference index returns over the joined output table.
type DiagnosticsSummary struct {
	// CorrelationA is the Pearson correlation of Approximation A returns with
	// the reference returns, pairwise complete.
	CorrelationA float64 `json:"correlation_a"`
	// CorrelationB is the same for the rebalancing simulation B.
	CorrelationB float64 `json:"correlation_b"`
	// MeanSpreadAB and StdSpreadAB describe the per-period A minus B return
	// difference.
	MeanSpreadAB float64 `json:"mean_spread_a_less_b"`
	StdSpreadAB  float64 `json:"std_spread_a_less_b"`
	// Observations is the number of joined periods considered.
	Observations int `json:"observations"`
}

// Correlation computes the Pearson correlation of two equal-length series,
// excluding pairs where either value is NaN. Fewer than two complete pairs
// yield NaN.
func Correlation(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// Diagnose summarizes how well the approximations track the reference index
func Diagnose(rows []ApproximationRow) DiagnosticsSummary {
	refRets := make([]float64, len(rows))
	retsA := make([]float64, len(rows))
	retsB := make([]float64, len(rows))
	var spreads []float64
	for i, row := range rows {
		refRets[i] = row.ReferenceReturn
		retsA[i] = row.Return
		retsB[i] = row.ReturnB
		if !math.IsNaN(row.Return) && !math.IsNaN(row.ReturnB) {
			spreads = append(spreads, row.Return-row.ReturnB)
		}
	}

	summary := DiagnosticsSummary{
		CorrelationA: Correlation(retsA, refRets),
		CorrelationB: Correlation(retsB, refRets),
		MeanSpreadAB: math.NaN(),
		StdSpreadAB:  math.NaN(),
		Observations: len(rows),
	}
	if len(spreads) > 0 {
		summary.MeanSpreadAB = stat.Mean(spreads, nil)
	}
	if len(spreads) > 1 {
		summary.StdSpreadAB = stat.StdDev(spreads, nil)
	}
	return summary
}
