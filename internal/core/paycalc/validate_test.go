package paycalc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shifttrack.service/internal/core/model"
)

func TestIsStructurallyValid(t *testing.T) {
	tests := []struct {
		name  string
		entry model.TimeEntry
		want  bool
	}{
		{"closed entry", closed("a", at(2, 9, 0), at(2, 17, 0)), true},
		{"open entry", open("a", at(2, 9, 0)), true},
		{"empty id", closed("", at(2, 9, 0), at(2, 17, 0)), false},
		{"zero clock-in", model.TimeEntry{ID: "a", ClockOut: tp(at(2, 17, 0))}, false},
		{"clock-out before clock-in", closed("a", at(2, 17, 0), at(2, 9, 0)), false},
		{"clock-out equal to clock-in", closed("a", at(2, 9, 0), at(2, 9, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStructurallyValid(tt.entry))
		})
	}
}

func TestHasNoOverlapTouchingBoundariesAreAdjacent(t *testing.T) {
	a := closed("a", at(2, 8, 0), at(2, 10, 0))
	b := closed("b", at(2, 10, 0), at(2, 12, 0))
	all := []model.TimeEntry{a, b}

	assert.True(t, HasNoOverlap(a, all))
	assert.True(t, HasNoOverlap(b, all))
}

func TestHasNoOverlapGenuineOverlapFailsBoth(t *testing.T) {
	a := closed("a", at(2, 8, 0), at(2, 11, 0))
	b := closed("b", at(2, 10, 0), at(2, 12, 0))
	all := []model.TimeEntry{a, b}

	assert.False(t, HasNoOverlap(a, all))
	assert.False(t, HasNoOverlap(b, all))
}

func TestHasNoOverlapOpenEntryExtendsForever(t *testing.T) {
	o := open("o", at(2, 9, 0))
	later := closed("b", at(2, 13, 0), at(2, 15, 0))
	all := []model.TimeEntry{o, later}

	assert.False(t, HasNoOverlap(o, all))
	assert.False(t, HasNoOverlap(later, all))
}

func TestHasNoOverlapExcludesSelf(t *testing.T) {
	a := closed("a", at(2, 8, 0), at(2, 11, 0))
	assert.True(t, HasNoOverlap(a, []model.TimeEntry{a}))
}

func TestHasNoOverlapEditedCopyReplacesStored(t *testing.T) {
	// The candidate carries the same id as its stored version, so the edit
	// is compared against everything but itself.
	stored := closed("a", at(2, 8, 0), at(2, 10, 0))
	other := closed("b", at(2, 10, 0), at(2, 12, 0))
	edited := closed("a", at(2, 8, 30), at(2, 10, 0))

	assert.True(t, HasNoOverlap(edited, []model.TimeEntry{stored, other}))

	conflicting := closed("a", at(2, 8, 0), at(2, 10, 30))
	assert.False(t, HasNoOverlap(conflicting, []model.TimeEntry{stored, other}))
}

func TestIsSingleOpenConsistentClosedAlwaysPasses(t *testing.T) {
	e := closed("a", at(2, 9, 0), at(2, 17, 0))
	all := []model.TimeEntry{e, open("b", at(3, 9, 0))}
	assert.True(t, IsSingleOpenConsistent(e, all))
}

func TestIsSingleOpenConsistentOpenMustBeLatest(t *testing.T) {
	earlier := open("a", at(2, 9, 0))
	later := open("b", at(2, 13, 0))
	all := []model.TimeEntry{earlier, later}

	assert.False(t, IsSingleOpenConsistent(earlier, all))
	assert.True(t, IsSingleOpenConsistent(later, all))
}

func TestIsSingleOpenConsistentLaterClosedEntryBlocksReopen(t *testing.T) {
	reopened := open("a", at(2, 9, 0))
	all := []model.TimeEntry{
		closed("a", at(2, 9, 0), at(2, 17, 0)),
		closed("b", at(3, 9, 0), at(3, 17, 0)),
	}
	assert.False(t, IsSingleOpenConsistent(reopened, all))
}

func TestValidatorsArePure(t *testing.T) {
	a := closed("a", at(2, 8, 0), at(2, 10, 0))
	b := open("b", at(2, 12, 0))
	all := []model.TimeEntry{a, b}
	before := make([]model.TimeEntry, len(all))
	copy(before, all)

	_ = IsStructurallyValid(a)
	_ = HasNoOverlap(a, all)
	_ = IsSingleOpenConsistent(b, all)

	assert.Equal(t, before, all)
}
