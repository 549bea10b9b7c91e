package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEpochDayAdjacency(t *testing.T) {
	// month boundary: Jan 31 and Feb 1 are adjacent days
	a := time.Date(2026, 1, 31, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 2, 1, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, EpochDay(b)-EpochDay(a))

	// same calendar day regardless of hour
	c := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)
	d := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, EpochDay(c), EpochDay(d))
}

func TestStartOfWeek(t *testing.T) {
	// 2026-08-26 is a Wednesday; its week starts Monday 2026-08-24
	wed := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), StartOfWeek(wed))

	mon := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, StartOfWeek(mon))

	sun := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, StartOfWeek(sun))
}

func TestCalendarWindows(t *testing.T) {
	assert.True(t, IsWeekend(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)))  // Fri
	assert.True(t, IsWeekend(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)))  // Sun
	assert.False(t, IsWeekend(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC))) // Thu

	assert.True(t, IsPeakHour(time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC)))
	assert.True(t, IsPeakHour(time.Date(2026, 8, 27, 21, 59, 0, 0, time.UTC)))
	assert.False(t, IsPeakHour(time.Date(2026, 8, 27, 22, 0, 0, 0, time.UTC)))
	assert.False(t, IsPeakHour(time.Date(2026, 8, 27, 17, 59, 0, 0, time.UTC)))
}

func TestRandBetween(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := RandBetween(15, 25)
		assert.GreaterOrEqual(t, n, 15)
		assert.LessOrEqual(t, n, 25)
	}
	assert.Equal(t, 7, RandBetween(7, 7))
}
