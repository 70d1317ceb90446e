// Package index reconstructs stock market index levels and returns from
// per-security panel data and point-in-time constituent membership.
//
// The package implements two families of computations:
//
//  1. Full-universe aggregation: equal-weighted and value-weighted index
//     returns over every security in the panel, where value weights are the
//     prior-period market capitalizations produced by the lag builder
//     (equal.go, value.go, lag.go), reconciled against the official reference
//     index by inner join on date (merge.go).
//
//  2. Constituent approximations: two reconstructions of a reference index
//     from its point-in-time membership list (membership.go).
//     Approximation A sums constituent market caps per period and normalizes
//     the series to the reference index's starting level (approx.go).
//     Approximation B simulates a portfolio whose weights are reset to
//     cap-weighted values on calendar-quarter-end months and carried forward
//     unchanged in between (rebalance.go).
//
// # Null semantics
//
// NaN is the null sentinel throughout. A weighted-average denominator of zero
// yields NaN for that period; NaN propagates through downstream rows and is
// never raised as an error. Date-range mismatches produce empty tables, and
// inner joins silently drop dates absent from either side. Only the data
// loading boundary (internal/dataset) rejects malformed input.
//
// # Purity
//
// Every entry point is a pure transform from in-memory input tables to a
// date-ordered output table. No state survives a call; running a computation
// twice on identical input yields identical output.
//
// # Usage Example
//
//	vw := index.ValueWeightedIndex(panel, index.MonthEnd)
//	ew := index.EqualWeightedIndex(panel)
//	merged := index.MergeIndices(reference, vw, ew)
//
//	rows := index.CreateIndexApproximations(panel, memberships, reference, index.ApproximationOptions{
//	    Start:       start,
//	    End:         end,
//	    Calibration: index.DefaultCalibrationFactors(),
//	})
//	summary := index.Diagnose(rows)
package index
