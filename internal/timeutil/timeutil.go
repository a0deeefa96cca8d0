// Package timeutil provides utility functions for working with calendar
// boundaries (days, Monday-aligned weeks, months).
package timeutil

import (
	"time"
)

const daysInAWeek = 7

// NowUTC returns the current instant in UTC. The store records all note
// times through this so persisted state is timezone-independent.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// StartOfWeek resets the given time to midnight on the Monday of its week.
func StartOfWeek(t time.Time) time.Time {
	days := int(t.Weekday()) - int(time.Monday)
	if days < 0 {
		// Sunday belongs to the week that started six days earlier
		days += daysInAWeek
	}

	return RoundToStart(t).AddDate(0, 0, -days)
}

// StartOfMonth resets the given time to midnight on the first of its month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
