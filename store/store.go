// Package store implements the time-tracking store: the single-active-box
// state machine, the list query engine, and the pluggable persistence
// strategies that back it.
package store

import (
	"github.com/danielbiegler/timebox/internal/models"
)

// State is the full persistable state of a time-tracking store: at most one
// active time box and the insertion-ordered finished boxes.
type State struct {
	Active   *models.TimeBox  `json:"active"`
	Finished []models.TimeBox `json:"finished"`
}

// Validate checks the entity invariants of every box in the state.
func (s *State) Validate() error {
	if s.Active != nil {
		if err := s.Active.Validate(); err != nil {
			return err
		}
	}

	for i := range s.Finished {
		if err := s.Finished[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a deep copy of the state.
func (s *State) Clone() State {
	c := State{}

	if s.Active != nil {
		active := s.Active.Clone()
		c.Active = &active
	}

	if s.Finished != nil {
		c.Finished = make([]models.TimeBox, 0, len(s.Finished))
		for i := range s.Finished {
			c.Finished = append(c.Finished, s.Finished[i].Clone())
		}
	}

	return c
}

// Store is the operation set every time-tracking backend implements.
//
// At most one time box is active at any instant. Mutating operations persist
// the new state before returning; on persistence failure the mutation is
// rolled back so memory and storage never diverge.
type Store interface {
	// Begin creates a new active time box whose first note carries the
	// description. Fails with ErrAlreadyActive if a box is active.
	Begin(description string) (*models.TimeBox, error)
	// Note appends a note to the active time box. Fails with ErrNoActiveBox.
	Note(description string) (*models.TimeBox, error)
	// Amend replaces the description of the active box's most recent note.
	// The note's time and all earlier notes are untouched. Fails with
	// ErrNoActiveBox.
	Amend(description string) (*models.TimeBox, error)
	// End closes the active time box and archives it at the end of the
	// finished list. Fails with ErrNoActiveBox.
	End() (*models.TimeBox, error)
	// Resume reactivates the most recently finished time box, reversing an
	// End. Fails with ErrAlreadyActive or ErrNoFinishedBoxes.
	Resume() (*models.TimeBox, error)
	// Cancel discards the active time box without archiving it. Fails with
	// ErrNoActiveBox.
	Cancel() (*models.TimeBox, error)
	// Clear removes all finished time boxes and returns how many were
	// removed. Fails with ErrActiveBoxPresent while a box is active.
	Clear() (int, error)
	// Active returns a snapshot of the active time box, or nil if idle.
	Active() (*models.TimeBox, error)
	// List returns finished time boxes filtered, ordered, and paginated
	// according to the options.
	List(opts ListOptions) (*ListResult, error)
}
