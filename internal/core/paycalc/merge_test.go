package paycalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shifttrack.service/internal/core/model"
)

func TestMergeIncomingWinsOnSharedID(t *testing.T) {
	base := closed("a", at(2, 9, 0), at(2, 17, 0))
	incoming := closed("a", at(2, 9, 30), at(2, 18, 0))
	incoming.Notes = "edited on phone"

	merged := Merge([]model.TimeEntry{base}, []model.TimeEntry{incoming})

	require.Len(t, merged, 1)
	assert.Equal(t, incoming, merged[0])
}

func TestMergeSortsByClockIn(t *testing.T) {
	merged := Merge(
		[]model.TimeEntry{
			closed("late", at(4, 9, 0), at(4, 17, 0)),
			closed("early", at(2, 9, 0), at(2, 17, 0)),
		},
		[]model.TimeEntry{
			closed("middle", at(3, 9, 0), at(3, 17, 0)),
		},
	)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"early", "middle", "late"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
}

func TestMergeEmptySides(t *testing.T) {
	only := []model.TimeEntry{closed("a", at(2, 9, 0), at(2, 17, 0))}

	assert.Equal(t, only, Merge(nil, only))
	assert.Equal(t, only, Merge(only, nil))
	assert.Empty(t, Merge(nil, nil))
}
