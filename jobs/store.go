package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/cockroachdb/pebble"

	"scenecast/models"
)

// ErrNotFound is returned when a job ID has no record.
var ErrNotFound = errors.New("job not found")

const lockStripes = 64

// Store persists job records in a Pebble database. Every mutation is a
// read-modify-write under a per-job lock so concurrent writers to the same
// job serialize and readers never observe a partially applied update.
type Store struct {
	db    *pebble.DB
	locks [lockStripes]sync.Mutex
}

// OpenStore opens (or creates) the job database at the given path.
func OpenStore(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open job store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}

// Put writes a full job record.
func (s *Store) Put(job *models.Job) error {
	mu := s.lock(job.ID)
	mu.Lock()
	defer mu.Unlock()
	return s.write(job)
}

func (s *Store) write(job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}
	if err := s.db.Set([]byte(job.ID), data, pebble.Sync); err != nil {
		return fmt.Errorf("persist job %s: %w", job.ID, err)
	}
	return nil
}

// Get returns the job record for id, or ErrNotFound.
func (s *Store) Get(id string) (*models.Job, error) {
	data, closer, err := s.db.Get([]byte(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read job %s: %w", id, err)
	}
	defer closer.Close()

	var job models.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job %s: %w", id, err)
	}
	return &job, nil
}

// Update applies fn to the current record and writes the result back, all
// under the job's lock. fn returning an error aborts without writing.
func (s *Store) Update(id string, fn func(*models.Job) error) error {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	job, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := fn(job); err != nil {
		return err
	}
	return s.write(job)
}

// Delete removes a job record.
func (s *Store) Delete(id string) error {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()
	return s.db.Delete([]byte(id), pebble.Sync)
}

// All returns every stored job record. Records that fail to decode are
// skipped rather than failing the listing.
func (s *Store) All() ([]*models.Job, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	var out []*models.Job
	for iter.First(); iter.Valid(); iter.Next() {
		var job models.Job
		if err := json.Unmarshal(iter.Value(), &job); err != nil {
			continue
		}
		out = append(out, &job)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iteration error: %w", err)
	}
	return out, nil
}
