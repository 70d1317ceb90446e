package index

import (
	"time"

	"indexcalc/pkg/contracts/domain"
)

// LagKey identifies one security's period anchor in a lagged column
type LagKey struct {
	SecurityID string
	Anchor     time.Time
}

// LagColumn builds the lag-1 value of an extracted column per security,
// aligned to the calendar grid of the frequency. The returned map holds, for
// each (security, anchor) pair, the extracted value of that security at the
// anchor one frequency step earlier. Pairs with no observation at the prior
// anchor are simply absent, which is the null lag value.
//
// Lagging is by calendar period, not row position: a security with a gap in
// coverage gets no lag at the period after the gap, never the value from
// before it.
func LagColumn(panel []domain.SecurityPeriod, extract func(domain.SecurityPeriod) float64, freq Frequency) map[LagKey]float64 {
	lagged := make(map[LagKey]float64, len(panel))
	for _, sp := range panel {
		anchor := freq.Anchor(sp.Date)
		lagged[LagKey{SecurityID: sp.SecurityID, Anchor: freq.Next(anchor)}] = extract(sp)
	}
	return lagged
}

// LookupLag fetches a lagged value for a security at a given date, normalizing
// the date to its frequency anchor. The second return reports whether a lag
// was defined.
func LookupLag(lagged map[LagKey]float64, id string, date time.Time, freq Frequency) (float64, bool) {
	v, ok := lagged[LagKey{SecurityID: id, Anchor: freq.Anchor(date)}]
	return v, ok
}
