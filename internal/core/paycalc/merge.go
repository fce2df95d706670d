package paycalc

import (
	"sort"

	"shifttrack.service/internal/core/model"
)

// Merge deduplicates two entry collections by id, with incoming winning on
// collision (last-writer-wins; no conflict detection beyond identity), and
// returns the result sorted ascending by clock-in. Merge itself performs no
// validation; the caller validates before or after.
func Merge(base, incoming []model.TimeEntry) []model.TimeEntry {
	byID := make(map[string]model.TimeEntry, len(base)+len(incoming))
	for _, e := range base {
		byID[e.ID] = e
	}
	for _, e := range incoming {
		byID[e.ID] = e
	}

	merged := make([]model.TimeEntry, 0, len(byID))
	for _, e := range byID {
		merged = append(merged, e)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ClockIn.Before(merged[j].ClockIn)
	})
	return merged
}
