package index

import (
	"math"
	"sort"
	"time"

	"indexcalc/pkg/contracts/domain"
)

// TotalConstituentMarketCap sums split-adjusted constituent market caps per
// period. The panel is first restricted to [start, end]; a reversed or empty
// range yields an empty table. For each distinct date the point-in-time
// membership filter selects the constituents, their adjusted caps are summed
// (NaN caps skipped), and the count of matched securities is recorded.
func TotalConstituentMarketCap(panel []domain.SecurityPeriod, intervals []domain.MembershipInterval, start, end time.Time) []MarketCapRow {
	panel = restrictRange(panel, start, end)
	if len(panel) == 0 {
		return []MarketCapRow{}
	}

	grid := make([]time.Time, 0, len(panel))
	for _, sp := range panel {
		grid = append(grid, sp.Date)
	}
	members := NewMembershipIndex(intervals, grid)

	type accum struct {
		cap float64
		ids map[string]struct{}
	}
	byDate := make(map[time.Time]*accum)
	for _, sp := range panel {
		date := Day(sp.Date)
		if !members.Contains(date, sp.SecurityID) {
			continue
		}
		a := byDate[date]
		if a == nil {
			a = &accum{ids: make(map[string]struct{})}
			byDate[date] = a
		}
		a.ids[sp.SecurityID] = struct{}{}
		if mcap := sp.AdjustedMarketCap(); !math.IsNaN(mcap) {
			a.cap += mcap
		}
	}

	rows := make([]MarketCapRow, 0, len(byDate))
	for _, date := range distinctSortedDates(grid) {
		row := MarketCapRow{Date: date}
		if a := byDate[date]; a != nil {
			row.TotalMarketCap = a.cap
			row.ConstituentCount = len(a.ids)
		}
		rows = append(rows, row)
	}
	return rows
}

// ApproximateIndexA reconstructs the reference index from summed constituent
// market caps. The cap series is inner-joined with the reference index on
// date, normalized so its first value equals the reference level of the first
// row, and converted to simple and cumulative returns. Undefined percent
// changes are zeroed rather than null: the first period, and any period whose
// own or preceding cap sum is missing or zero, so the cumulative series never
// carries a hole.
//
// The cumulative series carry the configurable calibration scale factors;
// invalid factors fall back to the defaults.
func ApproximateIndexA(caps []MarketCapRow, reference []domain.ReferencePeriod, cal CalibrationFactors) []ApproxARow {
	if !cal.IsValid() {
		cal = DefaultCalibrationFactors()
	}

	capByDate := make(map[time.Time]MarketCapRow, len(caps))
	for _, row := range caps {
		capByDate[Day(row.Date)] = row
	}

	rows := make([]ApproxARow, 0, len(reference))
	for _, ref := range reference {
		date := Day(ref.Date)
		capRow, ok := capByDate[date]
		if !ok {
			continue
		}
		rows = append(rows, ApproxARow{
			Date:             date,
			ReferenceLevel:   ref.Level,
			ReferenceReturn:  ref.Return,
			TotalMarketCap:   capRow.TotalMarketCap,
			ConstituentCount: capRow.ConstituentCount,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	if len(rows) == 0 {
		return rows
	}

	// Normalize the cap series so its first value matches the reference
	// index's starting level.
	normFactor := math.NaN()
	if rows[0].TotalMarketCap != 0 && !math.IsNaN(rows[0].TotalMarketCap) {
		normFactor = rows[0].ReferenceLevel / rows[0].TotalMarketCap
	}

	cum := 1.0
	refCum := 1.0
	for i := range rows {
		rows[i].NormalizedMarketCap = rows[i].TotalMarketCap * normFactor

		// Simple return is the percent change of the unnormalized cap
		// series, with every undefined change zeroed.
		rows[i].Return = 0
		if i > 0 {
			prev := rows[i-1].TotalMarketCap
			if prev != 0 && !math.IsNaN(prev) && !math.IsNaN(rows[i].TotalMarketCap) {
				rows[i].Return = rows[i].TotalMarketCap/prev - 1
			}
		}
		cum *= 1 + rows[i].Return
		rows[i].CumulativeReturn = cum * cal.ApproxScale

		refRet := rows[i].ReferenceReturn
		if math.IsNaN(refRet) {
			refRet = 0
		}
		refCum *= 1 + refRet
		rows[i].ReferenceCumulative = refCum * cal.ReferenceScale
	}
	return rows
}

// restrictRange keeps panel rows with start <= date <= end. A start after end
// produces an empty result rather than an error.
func restrictRange(panel []domain.SecurityPeriod, start, end time.Time) []domain.SecurityPeriod {
	startDay, endDay := Day(start), Day(end)
	if startDay.After(endDay) {
		return nil
	}
	kept := make([]domain.SecurityPeriod, 0, len(panel))
	for _, sp := range panel {
		day := Day(sp.Date)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		kept = append(kept, sp)
	}
	return kept
}
