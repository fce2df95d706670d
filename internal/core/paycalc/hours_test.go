package paycalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoursOpenEntryIsZero(t *testing.T) {
	assert.Zero(t, Hours(open("a", at(2, 9, 0))))
}

func TestHoursClosedEntry(t *testing.T) {
	assert.InDelta(t, 8.5, Hours(closed("a", at(2, 9, 0), at(2, 17, 30))), 1e-9)
}

func TestHoursFractional(t *testing.T) {
	assert.InDelta(t, 0.25, Hours(closed("a", at(2, 9, 0), at(2, 9, 15))), 1e-9)
}

func TestHoursTranslationInvariant(t *testing.T) {
	e := closed("a", at(2, 9, 0), at(2, 17, 0))
	shifted := closed("a", e.ClockIn.Add(37*time.Hour), e.ClockOut.Add(37*time.Hour))
	assert.InDelta(t, Hours(e), Hours(shifted), 1e-9)
}
