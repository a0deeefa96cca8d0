package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/danielbiegler/timebox/internal/models"
)

// Bolt-backed counterparts of the JSON file strategies. The same InMemory
// store composes with these to get a database-backed store: the contracts
// are identical, only the durable resource changes.

var (
	bucketActive   = []byte("active")
	bucketFinished = []byte("finished")

	keyActive = []byte("active")
)

const boltOpenTimeout = 1 * time.Second

// BoltInitStrategy creates an empty Bolt database with the required buckets.
type BoltInitStrategy struct {
	Path string
}

func (s *BoltInitStrategy) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return ErrIO.Wrap(err)
	}

	if _, err := os.Stat(s.Path); err == nil {
		return ErrAlreadyExists.Fmt(s.Path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return ErrIO.Wrap(err)
	}

	db, err := openBolt(s.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketActive); err != nil {
			return err
		}

		_, err := tx.CreateBucketIfNotExists(bucketFinished)

		return err
	})
	if err != nil {
		return ErrIO.Wrap(err)
	}

	return nil
}

// BoltLoadingStrategy reads the full store state from a Bolt database.
type BoltLoadingStrategy struct {
	Path string
}

func (s *BoltLoadingStrategy) Load() (*State, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound.Fmt(s.Path)
	} else if err != nil {
		return nil, ErrIO.Wrap(err)
	}

	db, err := openBolt(s.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var state State

	err = db.View(func(tx *bolt.Tx) error {
		active := tx.Bucket(bucketActive)
		finished := tx.Bucket(bucketFinished)

		if active == nil || finished == nil {
			return ErrCorrupt
		}

		if b := active.Get(keyActive); len(b) != 0 {
			var box models.TimeBox

			if err := json.Unmarshal(b, &box); err != nil {
				return ErrCorrupt.Wrap(err)
			}

			state.Active = &box
		}

		c := finished.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var box models.TimeBox

			if err := json.Unmarshal(v, &box); err != nil {
				return ErrCorrupt.Wrap(err)
			}

			state.Finished = append(state.Finished, box)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			return nil, err
		}

		return nil, ErrIO.Wrap(err)
	}

	if err := state.Validate(); err != nil {
		return nil, ErrCorrupt.Wrap(err)
	}

	return &state, nil
}

// BoltStorageStrategy replaces the full store state in a Bolt database
// within a single transaction, so a crash mid-save leaves the prior state
// intact.
type BoltStorageStrategy struct {
	Path string
}

func (s *BoltStorageStrategy) Save(state *State) error {
	db, err := openBolt(s.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketActive, bucketFinished} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}

			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		if state.Active != nil {
			b, err := json.Marshal(state.Active)
			if err != nil {
				return err
			}

			if err := tx.Bucket(bucketActive).Put(keyActive, b); err != nil {
				return err
			}
		}

		finished := tx.Bucket(bucketFinished)

		// Finished boxes are keyed by insertion index so listing order
		// survives the round trip even for boxes sharing a start instant.
		for i := range state.Finished {
			b, err := json.Marshal(&state.Finished[i])
			if err != nil {
				return err
			}

			if err := finished.Put(itob(uint64(i)), b); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return ErrIO.Wrap(err)
	}

	return nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)

	return b
}

// openBolt opens the database and locks it. A held lock means another
// timebox process is running against the same storage target.
func openBolt(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, ErrIO.Wrap(err)
	}

	return db, nil
}
