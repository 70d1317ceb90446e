package domain

import (
	"math"
	"time"
)

// SecurityPeriod represents one security's observation for one calendar period.
// Returns and adjustment factors may be NaN when the provider did not supply them;
// NaN is the null sentinel for all float columns.
type SecurityPeriod struct {
	SecurityID        string    `json:"security_id" csv:"security_id" validate:"required"`
	Date              time.Time `json:"date" csv:"date" validate:"required"`
	Price             float64   `json:"price" csv:"price"`
	SharesOutstanding float64   `json:"shares_outstanding" csv:"shares_outstanding"`
	Return            float64   `json:"return" csv:"return"`
	ReturnAdjusted    float64   `json:"return_adjusted" csv:"return_adjusted"`
	PriceFactor       float64   `json:"price_factor" csv:"price_factor"`
	SharesFactor      float64   `json:"shares_factor" csv:"shares_factor"`
}

// IsValid checks if the observation carries the minimum identifying fields
func (sp SecurityPeriod) IsValid() bool {
	return sp.SecurityID != "" && !sp.Date.IsZero()
}

// MarketCap returns the unadjusted market capitalization |price| * shares.
// Prices may be negative when the provider flags bid/ask midpoints, hence the
// absolute value.
func (sp SecurityPeriod) MarketCap() float64 {
	return math.Abs(sp.Price) * sp.SharesOutstanding
}

// AdjustedMarketCap returns the split-consistent market capitalization using the
// cumulative price and shares adjustment factors:
//
//	adjusted shares = shares_outstanding * shares_factor
//	adjusted price  = |price| / price_factor
//
// A zero or NaN price factor yields NaN rather than an infinity.
func (sp SecurityPeriod) AdjustedMarketCap() float64 {
	if sp.PriceFactor == 0 || math.IsNaN(sp.PriceFactor) {
		return math.NaN()
	}
	adjShares := sp.SharesOutstanding * sp.SharesFactor
	adjPrice := math.Abs(sp.Price) / sp.PriceFactor
	return adjPrice * adjShares
}
