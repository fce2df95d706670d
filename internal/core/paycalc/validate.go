package paycalc

import (
	"shifttrack.service/internal/core/model"
)

// IsStructurallyValid reports whether an entry is well-formed on its own:
// non-empty id, a real clock-in instant, and a clock-out (when present)
// strictly after the clock-in.
func IsStructurallyValid(e model.TimeEntry) bool {
	if e.ID == "" {
		return false
	}
	if e.ClockIn.IsZero() {
		return false
	}
	if e.ClockOut != nil && !e.ClockOut.After(e.ClockIn) {
		return false
	}
	return true
}

// HasNoOverlap reports whether the entry's interval is disjoint from every
// other entry in the collection. The entry itself is excluded by identity.
// An open entry's interval extends to positive infinity. Strict comparison
// is intentional: intervals that merely touch at a boundary are adjacent,
// not overlapping.
func HasNoOverlap(e model.TimeEntry, all []model.TimeEntry) bool {
	for _, other := range all {
		if other.ID == e.ID {
			continue
		}
		startsBeforeOtherEnds := other.ClockOut == nil || e.ClockIn.Before(*other.ClockOut)
		otherStartsBeforeEnds := e.ClockOut == nil || other.ClockIn.Before(*e.ClockOut)
		if startsBeforeOtherEnds && otherStartsBeforeEnds {
			return false
		}
	}
	return true
}

// IsSingleOpenConsistent enforces that an open entry is the chronologically
// last shift: no other entry in the collection may begin after it. Closed
// entries pass trivially.
func IsSingleOpenConsistent(e model.TimeEntry, all []model.TimeEntry) bool {
	if !e.IsOpen() {
		return true
	}
	for _, other := range all {
		if other.ID == e.ID {
			continue
		}
		if other.ClockIn.After(e.ClockIn) {
			return false
		}
	}
	return true
}
