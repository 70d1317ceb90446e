package index

import (
	"sort"
	"time"

	"indexcalc/pkg/contracts/domain"
)

// MembershipIndex answers point-in-time constituent lookups over a fixed date
// grid. It is built once per computation run with a sorted sweep over the
// membership intervals, so the per-date loops in the approximations pay O(1)
// amortized per lookup instead of rescanning the interval table.
type MembershipIndex struct {
	dates  []time.Time
	active [][]string // sorted constituent ids per grid date
	pos    map[time.Time]int
}

// NewMembershipIndex precomputes the active constituent set for every date in
// the grid. Grid dates are normalized to midnight UTC and deduplicated.
// Interval endpoints are inclusive; multiple intervals per security (exits and
// re-entries) are handled by the sweep.
func NewMembershipIndex(intervals []domain.MembershipInterval, grid []time.Time) *MembershipIndex {
	dates := distinctSortedDates(grid)

	type event struct {
		at int // grid position the event takes effect
		id string
		on bool
	}
	var events []event
	for _, iv := range intervals {
		start := Day(iv.Start)
		end := Day(iv.End)
		// First grid date inside the interval and first past its end.
		from := sort.Search(len(dates), func(i int) bool { return !dates[i].Before(start) })
		to := sort.Search(len(dates), func(i int) bool { return dates[i].After(end) })
		if from >= to {
			continue // interval covers no grid date
		}
		events = append(events, event{at: from, id: iv.SecurityID, on: true})
		events = append(events, event{at: to, id: iv.SecurityID, on: false})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].at < events[j].at })

	idx := &MembershipIndex{
		dates:  dates,
		active: make([][]string, len(dates)),
		pos:    make(map[time.Time]int, len(dates)),
	}
	current := make(map[string]int) // id -> number of intervals covering the date
	next := 0
	for i, date := range dates {
		for next < len(events) && events[next].at == i {
			if events[next].on {
				current[events[next].id]++
			} else {
				current[events[next].id]--
				if current[events[next].id] <= 0 {
					delete(current, events[next].id)
				}
			}
			next++
		}
		ids := make([]string, 0, len(current))
		for id := range current {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		idx.active[i] = ids
		idx.pos[date] = i
	}
	return idx
}

// ActiveOn returns the sorted constituent ids active on a grid date. Dates
// outside the grid return nil.
func (m *MembershipIndex) ActiveOn(date time.Time) []string {
	i, ok := m.pos[Day(date)]
	if !ok {
		return nil
	}
	return m.active[i]
}

// Contains reports whether the security was a constituent on a grid date
func (m *MembershipIndex) Contains(date time.Time, id string) bool {
	i, ok := m.pos[Day(date)]
	if !ok {
		return false
	}
	ids := m.active[i]
	j := sort.SearchStrings(ids, id)
	return j < len(ids) && ids[j] == id
}

// ActiveConstituents is the baseline linear scan over the interval table for a
// single arbitrary date. The approximations use MembershipIndex instead; this
// exists for one-off queries and as a cross-check.
func ActiveConstituents(intervals []domain.MembershipInterval, date time.Time) []string {
	day := Day(date)
	seen := make(map[string]struct{})
	for _, iv := range intervals {
		if !day.Before(Day(iv.Start)) && !day.After(Day(iv.End)) {
			seen[iv.SecurityID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// distinctSortedDates normalizes, deduplicates and sorts a date grid
func distinctSortedDates(grid []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(grid))
	dates := make([]time.Time, 0, len(grid))
	for _, t := range grid {
		d := Day(t)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
