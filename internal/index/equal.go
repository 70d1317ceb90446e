package index

import (
	"math"
	"sort"
	"time"

	"indexcalc/pkg/contracts/domain"
)

// EqualWeightedIndex computes the per-period equal-weighted index: the
// unweighted mean of raw and adjusted returns across every security present on
// each date, plus the count of contributing securities. NaN returns are
// excluded from the means and the count; periods where every security is
// missing are dropped.
func EqualWeightedIndex(panel []domain.SecurityPeriod) []EqualWeightedRow {
	type accum struct {
		sum, sumAdj      float64
		n, nAdj, nEither int
	}
	byDate := make(map[time.Time]*accum)
	for _, sp := range panel {
		date := Day(sp.Date)
		a := byDate[date]
		if a == nil {
			a = &accum{}
			byDate[date] = a
		}
		contributed := false
		if !math.IsNaN(sp.Return) {
			a.sum += sp.Return
			a.n++
			contributed = true
		}
		if !math.IsNaN(sp.ReturnAdjusted) {
			a.sumAdj += sp.ReturnAdjusted
			a.nAdj++
			contributed = true
		}
		if contributed {
			a.nEither++
		}
	}

	rows := make([]EqualWeightedRow, 0, len(byDate))
	for date, a := range byDate {
		if a.nEither == 0 {
			continue // all securities missing for this period
		}
		row := EqualWeightedRow{Date: date, Return: math.NaN(), ReturnAdjusted: math.NaN(), Count: a.nEither}
		if a.n > 0 {
			row.Return = a.sum / float64(a.n)
		}
		if a.nAdj > 0 {
			row.ReturnAdjusted = a.sumAdj / float64(a.nAdj)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}
