package services

import (
	"testing"
	"time"

	"xideaflow_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func periodKeyAt(t time.Time, period models.UsagePeriod) string {
	s := &UsageServiceImpl{clock: FixedClock{T: t}}
	return s.PeriodKey(period)
}

func TestPeriodKey_Daily(t *testing.T) {
	at := time.Date(2026, 7, 4, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-07-04", periodKeyAt(at, models.UsagePeriodDaily))
}

func TestPeriodKey_Monthly(t *testing.T) {
	at := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-07", periodKeyAt(at, models.UsagePeriodMonthly))
}

func TestPeriodKey_Weekly(t *testing.T) {
	at := time.Date(2026, 7, 6, 12, 0, 0, 0, time.UTC) // Monday of ISO week 28
	assert.Equal(t, "2026-W28", periodKeyAt(at, models.UsagePeriodWeekly))
}

// ISO weeks can belong to the neighboring year at year boundaries.
func TestPeriodKey_WeeklyYearBoundary(t *testing.T) {
	// 2027-01-01 is a Friday, still ISO week 53 of 2026.
	at := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W53", periodKeyAt(at, models.UsagePeriodWeekly))

	// 2025-12-29 is a Monday, already ISO week 1 of 2026.
	at = time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W1", periodKeyAt(at, models.UsagePeriodWeekly))
}

func TestPeriodKey_RollsOverAtMidnightUTC(t *testing.T) {
	before := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	after := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.NotEqual(t,
		periodKeyAt(before, models.UsagePeriodDaily),
		periodKeyAt(after, models.UsagePeriodDaily))
	assert.NotEqual(t,
		periodKeyAt(before, models.UsagePeriodMonthly),
		periodKeyAt(after, models.UsagePeriodMonthly))
}

func TestPeriodKey_UnknownPeriodFallsBackToDaily(t *testing.T) {
	at := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-07-04", periodKeyAt(at, models.UsagePeriod("HOURLY")))
}
