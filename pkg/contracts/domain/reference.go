package domain

import (
	"time"
)

// ReferencePeriod represents one period of the official reference index series.
// Level and Return may be NaN when the provider left the field blank.
type ReferencePeriod struct {
	Date   time.Time `json:"date" csv:"date" validate:"required"`
	Level  float64   `json:"index_level" csv:"index_level"`
	Return float64   `json:"index_return" csv:"index_return"`
}

// IsValid checks if the reference period carries a usable date
func (rp ReferencePeriod) IsValid() bool {
	return !rp.Date.IsZero()
}
