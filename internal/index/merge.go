package index

import (
	"sort"
	"time"

	"indexcalc/pkg/contracts/domain"
)

// MergeIndices inner-joins the reference index series with the value- and
// equal-weighted aggregator outputs on date. Only dates present in all three
// tables survive; dates computable from one source but not another are
// intentionally dropped. Recomputed columns keep their _manual-suffixed
// exported names so they sit next to the official reference values.
func MergeIndices(reference []domain.ReferencePeriod, vw []ValueWeightedRow, ew []EqualWeightedRow) []MergedIndexRow {
	vwByDate := make(map[time.Time]ValueWeightedRow, len(vw))
	for _, row := range vw {
		vwByDate[Day(row.Date)] = row
	}
	ewByDate := make(map[time.Time]EqualWeightedRow, len(ew))
	for _, row := range ew {
		ewByDate[Day(row.Date)] = row
	}

	rows := make([]MergedIndexRow, 0, len(reference))
	for _, ref := range reference {
		date := Day(ref.Date)
		vwRow, ok := vwByDate[date]
		if !ok {
			continue
		}
		ewRow, ok := ewByDate[date]
		if !ok {
			continue
		}
		rows = append(rows, MergedIndexRow{
			Date:             date,
			ReferenceLevel:   ref.Level,
			ReferenceReturn:  ref.Return,
			VWReturn:         vwRow.Return,
			VWReturnAdjusted: vwRow.ReturnAdjusted,
			TotalMarketCap:   vwRow.TotalMarketCap,
			EWReturn:         ewRow.Return,
			EWReturnAdjusted: ewRow.ReturnAdjusted,
			ContributorCount: ewRow.Count,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}
