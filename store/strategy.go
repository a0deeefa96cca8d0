package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// The persistence concerns are split into three capability contracts so a
// store can compose them independently, e.g. keep the JSON shape while
// swapping the storage target.

// InitStrategy creates the durable backing resource for a store. It never
// overwrites existing state.
type InitStrategy interface {
	// Init fails with ErrAlreadyExists if the resource is already present,
	// or ErrIO on filesystem faults.
	Init() error
}

// LoadingStrategy reconstructs a store's full state from durable storage.
type LoadingStrategy interface {
	// Load fails with ErrNotFound when there is no prior state (so callers
	// can tell an uninitialized store from an I/O fault), ErrCorrupt when
	// the state cannot be decoded or violates the entity invariants, and
	// ErrIO otherwise.
	Load() (*State, error)
}

// StorageStrategy persists a store's full state, atomically replacing the
// prior content.
type StorageStrategy interface {
	// Save fails with ErrIO. A partially written state must never become
	// visible, even on a crash mid-save.
	Save(state *State) error
}

// Format is the serialization density of the JSON storage strategy. It has
// no effect on round-tripped state.
type Format int

const (
	Compact Format = iota
	Pretty
)

// JSONInitStrategy creates an empty JSON state file, including any missing
// parent directories, and drops a .gitignore next to it so a storage
// directory inside a repository stays out of version control.
type JSONInitStrategy struct {
	Path string
}

func (s *JSONInitStrategy) Init() error {
	dir := filepath.Dir(s.Path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ErrIO.Wrap(err)
	}

	if _, err := os.Stat(s.Path); err == nil {
		return ErrAlreadyExists.Fmt(s.Path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return ErrIO.Wrap(err)
	}

	storage := JSONStorageStrategy{Path: s.Path, Format: Pretty}

	if err := storage.Save(&State{}); err != nil {
		return err
	}

	ignorePath := filepath.Join(dir, ".gitignore")

	if _, err := os.Stat(ignorePath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(ignorePath, []byte("*\n"), 0o644); err != nil {
			return ErrIO.Wrap(err)
		}
	}

	return nil
}

// JSONLoadingStrategy reads a state file written by JSONStorageStrategy.
type JSONLoadingStrategy struct {
	Path string
}

func (s *JSONLoadingStrategy) Load() (*State, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound.Fmt(s.Path)
	} else if err != nil {
		return nil, ErrIO.Wrap(err)
	}

	var state State

	if err := json.Unmarshal(b, &state); err != nil {
		return nil, ErrCorrupt.Wrap(err)
	}

	// The file may have been edited by hand; invariant violations are
	// surfaced, not repaired.
	if err := state.Validate(); err != nil {
		return nil, ErrCorrupt.Wrap(err)
	}

	return &state, nil
}

// JSONStorageStrategy serializes the state to a JSON file. The write goes to
// a temp file in the same directory which is then renamed over the target,
// so a crash mid-write cannot corrupt the previous state.
type JSONStorageStrategy struct {
	Path   string
	Format Format
}

func (s *JSONStorageStrategy) Save(state *State) error {
	var (
		b   []byte
		err error
	)

	if s.Format == Pretty {
		b, err = json.MarshalIndent(state, "", "  ")
	} else {
		b, err = json.Marshal(state)
	}

	if err != nil {
		return ErrIO.Wrap(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".timebox-*.tmp")
	if err != nil {
		return ErrIO.Wrap(err)
	}

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return ErrIO.Wrap(err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return ErrIO.Wrap(err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())

		return ErrIO.Wrap(err)
	}

	return nil
}
