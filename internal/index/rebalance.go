package index

import (
	"math"
	"time"

	"indexcalc/pkg/contracts/domain"
)

// IsRebalanceMonth reports whether the date falls in a calendar-quarter-end
// month (March, June, September, December), the months on which the simulated
// portfolio resets to current cap weights.
func IsRebalanceMonth(date time.Time) bool {
	switch date.Month() {
	case time.March, time.June, time.September, time.December:
		return true
	}
	return false
}

// RebalanceResult carries the simulated portfolio return series plus the
// per-date weight vectors, in the same sorted date order. CurrentWeights holds
// the cap-weighted constituent weights observed each date; HeldWeights holds
// the portfolio actually carried, which only snaps to CurrentWeights on the
// first date and on rebalance months.
type RebalanceResult struct {
	Rows           []RebalanceRow
	CurrentWeights []map[string]float64
	HeldWeights    []map[string]float64
}

// SimulateRebalancing runs the periodic-rebalancing portfolio simulation (B)
// over the sorted distinct dates of the panel restricted to [start, end].
//
// At the first date the held vector is set to the current constituent
// cap-weights (full rebalance). At each later date the current cap-weights are
// recomputed; if the date falls in a rebalance month the held vector is fully
// reset to them, otherwise the held vector of the immediately preceding
// distinct date is carried forward unchanged, with no renormalization.
//
// The realized portfolio return at each date is the dot product of the
// previous date's held weights with the current adjusted returns; securities
// with no return that period contribute nothing. The first date's return is
// forced null. The simulation is a pure function: no state survives between
// calls, and identical input yields identical output.
func SimulateRebalancing(panel []domain.SecurityPeriod, intervals []domain.MembershipInterval, start, end time.Time) RebalanceResult {
	panel = restrictRange(panel, start, end)
	if len(panel) == 0 {
		return RebalanceResult{Rows: []RebalanceRow{}}
	}

	grid := make([]time.Time, 0, len(panel))
	for _, sp := range panel {
		grid = append(grid, sp.Date)
	}
	dates := distinctSortedDates(grid)
	members := NewMembershipIndex(intervals, dates)

	byDate := make(map[time.Time][]domain.SecurityPeriod, len(dates))
	for _, sp := range panel {
		date := Day(sp.Date)
		byDate[date] = append(byDate[date], sp)
	}

	result := RebalanceResult{
		Rows:           make([]RebalanceRow, len(dates)),
		CurrentWeights: make([]map[string]float64, len(dates)),
		HeldWeights:    make([]map[string]float64, len(dates)),
	}

	for i, date := range dates {
		// Cap-weighted constituent weights for this date. Zero total cap
		// leaves the vector empty.
		caps := make(map[string]float64)
		totalCap := 0.0
		for _, sp := range byDate[date] {
			if !members.Contains(date, sp.SecurityID) {
				continue
			}
			mcap := sp.MarketCap()
			if math.IsNaN(mcap) {
				continue
			}
			caps[sp.SecurityID] += mcap
			totalCap += mcap
		}
		current := make(map[string]float64, len(caps))
		if totalCap > 0 {
			for id, mcap := range caps {
				current[id] = mcap / totalCap
			}
		}
		result.CurrentWeights[i] = current

		if i == 0 || IsRebalanceMonth(date) {
			// Full reset: stale holdings from the previous vector drop to zero.
			result.HeldWeights[i] = current
		} else {
			result.HeldWeights[i] = result.HeldWeights[i-1]
		}

		row := RebalanceRow{Date: date, Return: math.NaN()}
		if i > 0 {
			lagged := result.HeldWeights[i-1]
			ret := 0.0
			for _, sp := range byDate[date] {
				w, ok := lagged[sp.SecurityID]
				if !ok || math.IsNaN(sp.ReturnAdjusted) {
					continue
				}
				ret += w * sp.ReturnAdjusted
			}
			row.Return = ret
		}
		result.Rows[i] = row
	}
	return result
}
