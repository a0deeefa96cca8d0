package store

import (
	"log/slog"
	"time"

	"github.com/danielbiegler/timebox/internal/models"
	"github.com/danielbiegler/timebox/internal/timeutil"
)

// InMemory is the reference Store implementation: it holds the full state in
// memory and delegates durability to a StorageStrategy. Every mutation is
// persisted before it is reported successful; if persisting fails the
// mutation is rolled back so memory never silently diverges from storage.
//
// InMemory is not safe for concurrent use. One process per storage target.
type InMemory struct {
	state   State
	storage StorageStrategy
	clock   func() time.Time
}

// Option configures an InMemory store.
type Option func(*InMemory)

// WithClock replaces the store's clock. The CLI freezes it per invocation;
// tests inject fixed instants.
func WithClock(clock func() time.Time) Option {
	return func(s *InMemory) {
		s.clock = clock
	}
}

// NewInMemory loads prior state through the loading strategy and persists
// through the storage strategy. Load failures, including ErrNotFound for an
// uninitialized store, are returned as-is for the caller to interpret.
func NewInMemory(
	loading LoadingStrategy,
	storage StorageStrategy,
	opts ...Option,
) (*InMemory, error) {
	state, err := loading.Load()
	if err != nil {
		return nil, err
	}

	s := &InMemory{
		state:   *state,
		storage: storage,
		clock:   timeutil.NowUTC,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *InMemory) Begin(description string) (*models.TimeBox, error) {
	if s.state.Active != nil {
		return nil, ErrAlreadyActive
	}

	s.state.Active = &models.TimeBox{
		Notes: []models.TimeBoxNote{
			{Time: s.clock(), Description: description},
		},
	}

	if err := s.persist(); err != nil {
		s.state.Active = nil
		return nil, err
	}

	return s.snapshotActive(), nil
}

func (s *InMemory) Note(description string) (*models.TimeBox, error) {
	if s.state.Active == nil {
		return nil, ErrNoActiveBox
	}

	s.state.Active.Notes = append(s.state.Active.Notes, models.TimeBoxNote{
		Time:        s.clock(),
		Description: description,
	})

	if err := s.persist(); err != nil {
		notes := s.state.Active.Notes
		s.state.Active.Notes = notes[:len(notes)-1]

		return nil, err
	}

	return s.snapshotActive(), nil
}

func (s *InMemory) Amend(description string) (*models.TimeBox, error) {
	if s.state.Active == nil {
		return nil, ErrNoActiveBox
	}

	last := len(s.state.Active.Notes) - 1
	prev := s.state.Active.Notes[last].Description
	s.state.Active.Notes[last].Description = description

	if err := s.persist(); err != nil {
		s.state.Active.Notes[last].Description = prev
		return nil, err
	}

	return s.snapshotActive(), nil
}

// End archives the active box. A closing note carrying the final
// description is appended first, marking when work actually stopped; it is
// skipped when the last note was written at the same instant, so that a
// note-then-end shorthand does not record the same entry twice.
func (s *InMemory) End() (*models.TimeBox, error) {
	if s.state.Active == nil {
		return nil, ErrNoActiveBox
	}

	prev := s.state.Clone()

	box := s.state.Active
	now := s.clock()
	last := box.Notes[len(box.Notes)-1]

	if !last.Time.Equal(now) {
		box.Notes = append(box.Notes, models.TimeBoxNote{
			Time:        now,
			Description: last.Description,
		})
	}

	s.state.Finished = append(s.state.Finished, *box)
	s.state.Active = nil

	if err := s.persist(); err != nil {
		s.state = prev
		return nil, err
	}

	ended := s.state.Finished[len(s.state.Finished)-1].Clone()

	return &ended, nil
}

func (s *InMemory) Resume() (*models.TimeBox, error) {
	if s.state.Active != nil {
		return nil, ErrAlreadyActive
	}

	if len(s.state.Finished) == 0 {
		return nil, ErrNoFinishedBoxes
	}

	last := len(s.state.Finished) - 1
	box := s.state.Finished[last]
	s.state.Finished = s.state.Finished[:last]
	s.state.Active = &box

	if err := s.persist(); err != nil {
		s.state.Finished = append(s.state.Finished, box)
		s.state.Active = nil

		return nil, err
	}

	return s.snapshotActive(), nil
}

func (s *InMemory) Cancel() (*models.TimeBox, error) {
	if s.state.Active == nil {
		return nil, ErrNoActiveBox
	}

	box := s.state.Active
	s.state.Active = nil

	if err := s.persist(); err != nil {
		s.state.Active = box
		return nil, err
	}

	canceled := box.Clone()

	return &canceled, nil
}

func (s *InMemory) Clear() (int, error) {
	if s.state.Active != nil {
		return 0, ErrActiveBoxPresent
	}

	finished := s.state.Finished
	s.state.Finished = nil

	if err := s.persist(); err != nil {
		s.state.Finished = finished
		return 0, err
	}

	slog.Info("cleared finished time boxes", slog.Int("count", len(finished)))

	return len(finished), nil
}

func (s *InMemory) Active() (*models.TimeBox, error) {
	return s.snapshotActive(), nil
}

func (s *InMemory) List(opts ListOptions) (*ListResult, error) {
	return applyListOptions(s.state.Finished, opts, s.clock())
}

func (s *InMemory) persist() error {
	return s.storage.Save(&s.state)
}

func (s *InMemory) snapshotActive() *models.TimeBox {
	if s.state.Active == nil {
		return nil
	}

	snap := s.state.Active.Clone()

	return &snap
}
