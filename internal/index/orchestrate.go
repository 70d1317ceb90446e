package index

import (
	"math"
	"time"

	"indexcalc/pkg/contracts/domain"
)

// CreateIndexApproximations runs Approximation A and the rebalancing
// simulation B over the same inputs and inner-joins the two outputs on date
// into one period-indexed table. The joined rows also carry the cumulative
// Approximation B return, compounded over the non-null B returns.
func CreateIndexApproximations(panel []domain.SecurityPeriod, intervals []domain.MembershipInterval, reference []domain.ReferencePeriod, opts ApproximationOptions) []ApproximationRow {
	caps := TotalConstituentMarketCap(panel, intervals, opts.Start, opts.End)
	rowsA := ApproximateIndexA(caps, reference, opts.Calibration)
	resultB := SimulateRebalancing(panel, intervals, opts.Start, opts.End)

	bByDate := make(map[time.Time]RebalanceRow, len(resultB.Rows))
	for _, row := range resultB.Rows {
		bByDate[Day(row.Date)] = row
	}

	rows := make([]ApproximationRow, 0, len(rowsA))
	cumB := 1.0
	for _, rowA := range rowsA {
		rowB, ok := bByDate[Day(rowA.Date)]
		if !ok {
			continue
		}
		joined := ApproximationRow{
			ApproxARow:        rowA,
			ReturnB:           rowB.Return,
			CumulativeReturnB: math.NaN(),
		}
		if !math.IsNaN(rowB.Return) {
			cumB *= 1 + rowB.Return
			joined.CumulativeReturnB = cumB
		}
		rows = append(rows, joined)
	}
	return rows
}
