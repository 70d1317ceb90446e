package domain

import (
	"time"
)

// UnknownClassification is the sentinel stored in optional membership
// classification fields the provider did not supply. Loaders fill it in rather
// than failing, so downstream code can rely on the columns existing.
const UnknownClassification = "UNKNOWN"

// MembershipInterval represents one [start, end] constituent membership span for
// a security. A security may carry several non-overlapping intervals when it
// left and later re-entered the index.
type MembershipInterval struct {
	SecurityID string    `json:"security_id" csv:"security_id" validate:"required"`
	Start      time.Time `json:"membership_start_date" csv:"membership_start_date" validate:"required"`
	End        time.Time `json:"membership_end_date" csv:"membership_end_date" validate:"required"`

	// Optional classification columns. Defaulted to UnknownClassification when
	// absent from the provider's table.
	IndexNumber string `json:"index_number,omitempty" csv:"index_number"`
	MemberFlag  string `json:"member_flag,omitempty" csv:"member_flag"`
	IndexFamily string `json:"index_family,omitempty" csv:"index_family"`
}

// IsValid checks if the interval is well-formed
func (mi MembershipInterval) IsValid() bool {
	return mi.SecurityID != "" && !mi.Start.IsZero() && !mi.End.IsZero() && !mi.End.Before(mi.Start)
}

// Contains reports whether the security was a constituent on the given date,
// inclusive of both endpoints.
func (mi MembershipInterval) Contains(date time.Time) bool {
	return !date.Before(mi.Start) && !date.After(mi.End)
}
