// Package models defines the time box entities shared across the store
// backends and the reporting layer.
package models

import (
	"time"

	"github.com/danielbiegler/timebox/internal/apperr"
)

var (
	errMissingNote = &apperr.Error{
		Message: "time box has no notes",
	}

	errUnsortedNote = &apperr.Error{
		Message: "note %q at %s is earlier than the note before it",
	}
)

// TimeBoxNote is a single journal entry within a time box. Notes are
// append-only; only the description of the most recent note may be amended.
type TimeBoxNote struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
}

// TimeBox is a bounded work session represented as a chronological sequence
// of notes. A time box always has at least one note: the one created when
// work began.
type TimeBox struct {
	Notes []TimeBoxNote `json:"notes"`
}

// StartTime is the instant of the first note, or the zero time for an
// invalid, note-less box.
func (t *TimeBox) StartTime() time.Time {
	if len(t.Notes) == 0 {
		return time.Time{}
	}

	return t.Notes[0].Time
}

// EndTime is the instant of the last note, or the zero time for an invalid,
// note-less box.
func (t *TimeBox) EndTime() time.Time {
	if len(t.Notes) == 0 {
		return time.Time{}
	}

	return t.Notes[len(t.Notes)-1].Time
}

// Duration is the span between the first and last note. It is zero while
// only one note exists.
func (t *TimeBox) Duration() time.Duration {
	return t.EndTime().Sub(t.StartTime())
}

// DurationMinutes expresses the duration in fractional minutes.
func (t *TimeBox) DurationMinutes() float64 {
	return t.Duration().Seconds() / 60
}

// DurationHours expresses the duration in fractional hours.
func (t *TimeBox) DurationHours() float64 {
	return t.Duration().Seconds() / 60 / 60
}

// Validate reports whether the box satisfies its invariants: at least one
// note, and note times that never decrease.
func (t *TimeBox) Validate() error {
	if len(t.Notes) == 0 {
		return errMissingNote
	}

	prev := t.Notes[0].Time

	for _, n := range t.Notes[1:] {
		if n.Time.Before(prev) {
			return errUnsortedNote.Fmt(
				n.Description,
				n.Time.Format(time.RFC3339),
			)
		}

		prev = n.Time
	}

	return nil
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (t *TimeBox) Clone() TimeBox {
	c := TimeBox{
		Notes: make([]TimeBoxNote, len(t.Notes)),
	}

	copy(c.Notes, t.Notes)

	return c
}
