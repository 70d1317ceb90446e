package index

import (
	"time"
)

// Frequency represents the calendar period granularity used for lag alignment
type Frequency int

const (
	// MonthStart anchors every date to the first day of its month
	MonthStart Frequency = iota
	// MonthEnd anchors every date to the last day of its month
	MonthEnd
)

// String returns the string representation of the frequency
func (f Frequency) String() string {
	switch f {
	case MonthStart:
		return "month-start"
	case MonthEnd:
		return "month-end"
	default:
		return "unknown"
	}
}

// ParseFrequency maps a configuration string to a Frequency. Unrecognized
// values fall back to MonthEnd, the convention of monthly security files.
func ParseFrequency(s string) Frequency {
	if s == "month-start" {
		return MonthStart
	}
	return MonthEnd
}

// Anchor normalizes a date to its period anchor under the frequency. Times are
// truncated to midnight UTC so anchors compare with ==.
func (f Frequency) Anchor(t time.Time) time.Time {
	y, m, _ := t.Date()
	switch f {
	case MonthStart:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}
}

// Prev returns the anchor one frequency step before the given anchor
func (f Frequency) Prev(anchor time.Time) time.Time {
	y, m, _ := anchor.Date()
	switch f {
	case MonthStart:
		return time.Date(y, m-1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}
}

// Next returns the anchor one frequency step after the given anchor
func (f Frequency) Next(anchor time.Time) time.Time {
	y, m, _ := anchor.Date()
	switch f {
	case MonthStart:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m+2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}
}

// Day truncates a timestamp to midnight UTC. All date keys inside the package
// go through this so map lookups and == comparisons are safe regardless of the
// location or clock time the loader produced.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EqualWeightedRow is one period of the equal-weighted index
type EqualWeightedRow struct {
	Date           time.Time `json:"date"`
	Return         float64   `json:"equal_weighted_return"`
	ReturnAdjusted float64   `json:"equal_weighted_return_adjusted"`
	Count          int       `json:"contributor_count"`
}

// ValueWeightedRow is one period of the value-weighted index
type ValueWeightedRow struct {
	Date           time.Time `json:"date"`
	Return         float64   `json:"value_weighted_return"`
	ReturnAdjusted float64   `json:"value_weighted_return_adjusted"`
	TotalMarketCap float64   `json:"total_market_cap"`
}

// MergedIndexRow joins one period of the reference index with the recomputed
// equal- and value-weighted indices. Recomputed columns carry a _manual suffix
// in exported headers so both the official and recomputed values survive.
type MergedIndexRow struct {
	Date             time.Time `json:"date"`
	ReferenceLevel   float64   `json:"index_level"`
	ReferenceReturn  float64   `json:"index_return"`
	VWReturn         float64   `json:"value_weighted_return_manual"`
	VWReturnAdjusted float64   `json:"value_weighted_return_adjusted_manual"`
	TotalMarketCap   float64   `json:"total_market_cap_manual"`
	EWReturn         float64   `json:"equal_weighted_return_manual"`
	EWReturnAdjusted float64   `json:"equal_weighted_return_adjusted_manual"`
	ContributorCount int       `json:"contributor_count_manual"`
}

// MarketCapRow is one period of summed constituent market capitalization
type MarketCapRow struct {
	Date             time.Time `json:"date"`
	TotalMarketCap   float64   `json:"total_market_cap"`
	ConstituentCount int       `json:"constituent_count"`
}

// ApproxARow is one period of the market-cap approximation (A) of the
// reference index
type ApproxARow struct {
	Date                time.Time `json:"date"`
	ReferenceLevel      float64   `json:"index_level"`
	ReferenceReturn     float64   `json:"index_return"`
	TotalMarketCap      float64   `json:"total_market_cap"`
	ConstituentCount    int       `json:"constituent_count"`
	NormalizedMarketCap float64   `json:"normalized_market_cap"`
	Return              float64   `json:"approx_return_a"`
	CumulativeReturn    float64   `json:"approx_cumulative_return_a"`
	ReferenceCumulative float64   `json:"reference_cumulative_return"`
}

// RebalanceRow is one period of the rebalancing portfolio simulation (B)
type RebalanceRow struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"approx_return_b"`
}

// ApproximationRow joins one period of Approximation A with the rebalancing
// simulation B
type ApproximationRow struct {
	ApproxARow
	ReturnB           float64 `json:"approx_return_b"`
	CumulativeReturnB float64 `json:"approx_cumulative_return_b"`
}

// CalibrationFactors holds the constant scale factors applied to the
// cumulative return series. These are approximation-fitting artifacts carried
// over from the historical calibration, exposed as configuration rather than
// baked into the arithmetic.
type CalibrationFactors struct {
	// ApproxScale multiplies the cumulative Approximation A return series
	ApproxScale float64 `json:"approx_scale"`
	// ReferenceScale multiplies the reference cumulative return series
	ReferenceScale float64 `json:"reference_scale"`
}

// DefaultCalibrationFactors returns the historically calibrated scale factors
func DefaultCalibrationFactors() CalibrationFactors {
	return CalibrationFactors{
		ApproxScale:    0.993,
		ReferenceScale: 0.97,
	}
}

// IsValid checks if the calibration factors are usable
func (cf CalibrationFactors) IsValid() bool {
	return cf.ApproxScale > 0 && cf.ReferenceScale > 0
}

// ApproximationOptions configures one approximation run
type ApproximationOptions struct {
	Start       time.Time
	End         time.Time
	Calibration CalibrationFactors
}
