package pkg

import (
	"math/rand"
	"time"
)

// RandBetween returns a uniform integer in [min, max].
func RandBetween(min, max int) int {
	if max <= min {
		return min
	}
	return rand.Intn(max-min+1) + min
}

// EpochDay collapses a timestamp to a whole-day number since the Unix epoch,
// evaluated in UTC. Streak adjacency is plain integer arithmetic on these.
func EpochDay(t time.Time) int {
	return int(t.UTC().Unix() / 86400)
}

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns midnight of the Monday opening t's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether t falls in the Friday-Sunday bonus window.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

// IsPeakHour reports whether t falls inside the 18:00-22:00 evening window.
func IsPeakHour(t time.Time) bool {
	h := t.Hour()
	return h >= 18 && h < 22
}
