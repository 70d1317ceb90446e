package index

import (
	"math"
	"sort"
	"time"

	"indexcalc/pkg/contracts/domain"
)

// ValueWeightedIndex computes the per-period value-weighted index return:
//
//	r_t = sum_i(r_{i,t} * cap_{i,t-1}) / sum_i(cap_{i,t-1})
//
// where cap_{i,t-1} is the security's market capitalization at the anchor one
// frequency step earlier, built with LagColumn. Every security with a defined
// lagged cap contributes to the denominator of its period; a missing return
// only removes its numerator term. The unlagged total market cap is emitted
// alongside for reference.
//
// The first period of the series has no lag and is forced null, then dropped
// with any other all-null rows. A zero lagged-cap denominator yields NaN
// returns for that period, which propagate rather than crash.
func ValueWeightedIndex(panel []domain.SecurityPeriod, freq Frequency) []ValueWeightedRow {
	lagged := LagColumn(panel, domain.SecurityPeriod.MarketCap, freq)

	type accum struct {
		num, numAdj, den, denAdj, totalCap float64
		anyCap                             bool
	}
	byDate := make(map[time.Time]*accum)
	for _, sp := range panel {
		date := Day(sp.Date)
		a := byDate[date]
		if a == nil {
			a = &accum{}
			byDate[date] = a
		}
		if mcap := sp.MarketCap(); !math.IsNaN(mcap) {
			a.totalCap += mcap
			a.anyCap = true
		}
		lagCap, ok := LookupLag(lagged, sp.SecurityID, sp.Date, freq)
		if !ok || math.IsNaN(lagCap) {
			continue // no lagged weight, excluded from this period entirely
		}
		// A security with a defined lagged weight stays in the denominator
		// even when its return is missing; only the numerator term drops.
		a.den += lagCap
		a.denAdj += lagCap
		if !math.IsNaN(sp.Return) {
			a.num += sp.Return * lagCap
		}
		if !math.IsNaN(sp.ReturnAdjusted) {
			a.numAdj += sp.ReturnAdjusted * lagCap
		}
	}

	rows := make([]ValueWeightedRow, 0, len(byDate))
	for date, a := range byDate {
		row := ValueWeightedRow{
			Date:           date,
			Return:         math.NaN(),
			ReturnAdjusted: math.NaN(),
			TotalMarketCap: math.NaN(),
		}
		if a.den != 0 {
			row.Return = a.num / a.den
		}
		if a.denAdj != 0 {
			row.ReturnAdjusted = a.numAdj / a.denAdj
		}
		if a.anyCap {
			row.TotalMarketCap = a.totalCap
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	// The earliest period can never have a lagged weight; force it null so it
	// falls out with the other all-null rows.
	if len(rows) > 0 {
		rows[0].Return = math.NaN()
		rows[0].ReturnAdjusted = math.NaN()
		rows[0].TotalMarketCap = math.NaN()
	}

	kept := rows[:0]
	for _, row := range rows {
		if math.IsNaN(row.Return) && math.IsNaN(row.ReturnAdjusted) && math.IsNaN(row.TotalMarketCap) {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
