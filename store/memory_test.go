package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// stateLoading serves a canned state, standing in for a durable backend.
type stateLoading struct {
	state State
}

func (m *stateLoading) Load() (*State, error) {
	s := m.state.Clone()
	return &s, nil
}

// recordingStorage captures every saved state and can be told to fail.
type recordingStorage struct {
	saves int
	last  *State
	fail  error
}

func (m *recordingStorage) Save(state *State) error {
	if m.fail != nil {
		return m.fail
	}

	c := state.Clone()
	m.last = &c
	m.saves++

	return nil
}

var testStart = time.Date(2025, time.April, 7, 9, 0, 0, 0, time.UTC)

// tickingClock returns a clock advancing one minute per reading.
func tickingClock(start time.Time) func() time.Time {
	current := start

	return func() time.Time {
		now := current
		current = current.Add(time.Minute)

		return now
	}
}

func frozenClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestStore(
	t *testing.T,
	state State,
	clock func() time.Time,
) (*InMemory, *recordingStorage) {
	t.Helper()

	storage := &recordingStorage{}

	s, err := NewInMemory(&stateLoading{state: state}, storage, WithClock(clock))
	if err != nil {
		t.Fatalf("creating store failed: %v", err)
	}

	return s, storage
}

func TestBeginCreatesActiveBox(t *testing.T) {
	s, storage := newTestStore(t, State{}, frozenClock(testStart))

	box, err := s.Begin("write the report")
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if len(box.Notes) != 1 {
		t.Fatalf("expected one note, got %d", len(box.Notes))
	}

	if !box.Notes[0].Time.Equal(testStart) {
		t.Errorf("expected note time %v, got %v", testStart, box.Notes[0].Time)
	}

	if box.Notes[0].Description != "write the report" {
		t.Errorf("unexpected description: %q", box.Notes[0].Description)
	}

	if storage.saves != 1 {
		t.Errorf("expected one save, got %d", storage.saves)
	}
}

func TestBeginTwiceFails(t *testing.T) {
	s, _ := newTestStore(t, State{}, frozenClock(testStart))

	if _, err := s.Begin("first"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	_, err := s.Begin("second")
	if !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("expected ErrAlreadyActive, got: %v", err)
	}
}

func TestOperationsRequireActiveBox(t *testing.T) {
	s, _ := newTestStore(t, State{}, frozenClock(testStart))

	cases := []struct {
		name string
		op   func() error
	}{
		{"note", func() error { _, err := s.Note("x"); return err }},
		{"amend", func() error { _, err := s.Amend("x"); return err }},
		{"end", func() error { _, err := s.End(); return err }},
		{"cancel", func() error { _, err := s.Cancel(); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.op(); !errors.Is(err, ErrNoActiveBox) {
				t.Errorf("expected ErrNoActiveBox, got: %v", err)
			}
		})
	}
}

func TestNoteAppends(t *testing.T) {
	s, _ := newTestStore(t, State{}, tickingClock(testStart))

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	box, err := s.Note("made progress")
	if err != nil {
		t.Fatalf("note failed: %v", err)
	}

	if len(box.Notes) != 2 {
		t.Fatalf("expected two notes, got %d", len(box.Notes))
	}

	if box.Notes[1].Description != "made progress" {
		t.Errorf("unexpected description: %q", box.Notes[1].Description)
	}

	if !box.Notes[1].Time.After(box.Notes[0].Time) {
		t.Error("expected the appended note to be later than the first")
	}
}

func TestAmendChangesOnlyLastDescription(t *testing.T) {
	s, _ := newTestStore(t, State{}, tickingClock(testStart))

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	before, err := s.Note("first draft")
	if err != nil {
		t.Fatalf("note failed: %v", err)
	}

	after, err := s.Amend("final draft")
	if err != nil {
		t.Fatalf("amend failed: %v", err)
	}

	if after.Notes[1].Description != "final draft" {
		t.Errorf("unexpected description: %q", after.Notes[1].Description)
	}

	if !after.Notes[1].Time.Equal(before.Notes[1].Time) {
		t.Error("amend must not change the note's time")
	}

	if diff := cmp.Diff(before.Notes[0], after.Notes[0]); diff != "" {
		t.Errorf("amend touched an earlier note (-before +after):\n%s", diff)
	}
}

func TestEndAppendsClosingNote(t *testing.T) {
	s, _ := newTestStore(t, State{}, tickingClock(testStart))

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	box, err := s.End()
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}

	if len(box.Notes) != 2 {
		t.Fatalf("expected a closing note, got %d notes", len(box.Notes))
	}

	if box.Notes[1].Description != box.Notes[0].Description {
		t.Error("expected the closing note to carry the final description")
	}

	active, err := s.Active()
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}

	if active != nil {
		t.Error("expected the store to be idle after end")
	}
}

// When end immediately follows a note at the same instant (the note --end
// shorthand under a per-invocation clock), no duplicate closing note is
// written.
func TestEndAfterSameInstantNoteSkipsClosingNote(t *testing.T) {
	s, _ := newTestStore(t, State{}, frozenClock(testStart))

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if _, err := s.Note("wrapping up"); err != nil {
		t.Fatalf("note failed: %v", err)
	}

	box, err := s.End()
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}

	if len(box.Notes) != 2 {
		t.Errorf("expected two notes, got %d", len(box.Notes))
	}
}

func TestEndThenResumeRestoresBox(t *testing.T) {
	s, _ := newTestStore(t, State{}, frozenClock(testStart))

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	before, err := s.Active()
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}

	if _, err := s.End(); err != nil {
		t.Fatalf("end failed: %v", err)
	}

	restored, err := s.Resume()
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}

	if diff := cmp.Diff(before, restored); diff != "" {
		t.Errorf("resume did not restore the box (-before +restored):\n%s", diff)
	}

	result, err := s.List(NewListOptions())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if result.Total != 0 {
		t.Errorf("expected no finished boxes after resume, got %d", result.Total)
	}
}

func TestResumeFailures(t *testing.T) {
	s, _ := newTestStore(t, State{}, frozenClock(testStart))

	if _, err := s.Resume(); !errors.Is(err, ErrNoFinishedBoxes) {
		t.Errorf("expected ErrNoFinishedBoxes, got: %v", err)
	}

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if _, err := s.Resume(); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("expected ErrAlreadyActive, got: %v", err)
	}
}

func TestCancelDiscardsWithoutArchiving(t *testing.T) {
	s, _ := newTestStore(t, State{}, frozenClock(testStart))

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if _, err := s.Cancel(); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	result, err := s.List(NewListOptions())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if result.Total != 0 {
		t.Errorf("canceled box must not be archived, got %d finished", result.Total)
	}
}

func TestClearGuardedByActiveBox(t *testing.T) {
	state := State{
		Finished: numberedBoxes(3, testStart),
	}

	s, _ := newTestStore(t, state, tickingClock(testStart.AddDate(0, 0, 5)))

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if _, err := s.Clear(); !errors.Is(err, ErrActiveBoxPresent) {
		t.Errorf("expected ErrActiveBoxPresent, got: %v", err)
	}

	result, err := s.List(NewListOptions())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if result.Total != 3 {
		t.Errorf("refused clear must leave finished boxes untouched, got %d", result.Total)
	}

	if _, err := s.Cancel(); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	count, err := s.Clear()
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if count != 3 {
		t.Errorf("expected 3 removed boxes, got %d", count)
	}

	result, err = s.List(NewListOptions())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if result.Total != 0 {
		t.Errorf("expected no finished boxes after clear, got %d", result.Total)
	}
}

func TestMutationsRollBackWhenPersistenceFails(t *testing.T) {
	s, storage := newTestStore(t, State{}, tickingClock(testStart))

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if _, err := s.Note("progress"); err != nil {
		t.Fatalf("note failed: %v", err)
	}

	storage.fail = errors.New("disk full")

	if _, err := s.Note("lost"); err == nil {
		t.Fatal("expected the note to fail")
	}

	if _, err := s.End(); err == nil {
		t.Fatal("expected the end to fail")
	}

	if _, err := s.Cancel(); err == nil {
		t.Fatal("expected the cancel to fail")
	}

	storage.fail = nil

	active, err := s.Active()
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}

	if active == nil {
		t.Fatal("rolled-back store must still have its active box")
	}

	if len(active.Notes) != 2 {
		t.Errorf("expected the two persisted notes, got %d", len(active.Notes))
	}

	result, err := s.List(NewListOptions())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if result.Total != 0 {
		t.Errorf("failed end must not archive the box, got %d finished", result.Total)
	}

	// memory and the last successful save agree
	if diff := cmp.Diff(storage.last.Active, active); diff != "" {
		t.Errorf("memory diverged from storage (-stored +memory):\n%s", diff)
	}
}

func TestEveryMutationPersists(t *testing.T) {
	s, storage := newTestStore(t, State{}, tickingClock(testStart))

	if _, err := s.Begin("begin"); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if _, err := s.Note("progress"); err != nil {
		t.Fatalf("note failed: %v", err)
	}

	if _, err := s.Amend("better"); err != nil {
		t.Fatalf("amend failed: %v", err)
	}

	if _, err := s.End(); err != nil {
		t.Fatalf("end failed: %v", err)
	}

	if _, err := s.Resume(); err != nil {
		t.Fatalf("resume failed: %v", err)
	}

	if _, err := s.Cancel(); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if storage.saves != 7 {
		t.Errorf("expected 7 saves, got %d", storage.saves)
	}
}
