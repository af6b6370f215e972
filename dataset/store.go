package dataset

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Dataset holds one upload's normalized tables. Immutable after creation:
// filter changes derive fresh views instead of mutating these.
type Dataset struct {
	ID           string
	Stations     []StationRecord
	Results      []ResultRecord
	Contaminants []string
	CreatedAt    time.Time
}

// Store keeps uploaded datasets in memory, keyed by upload identity, so
// successive filter-only changes reuse the parsed tables. Oldest datasets
// are evicted once capacity is reached. Nothing survives the process.
type Store struct {
	mu       sync.Mutex
	capacity int
	order    []string
	datasets map[string]*Dataset
}

// NewStore creates a store holding at most capacity datasets.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		datasets: make(map[string]*Dataset),
	}
}

// Put registers a freshly loaded pair of tables under a new identifier,
// evicting the oldest dataset when the store is full.
func (s *Store) Put(stations []StationRecord, results []ResultRecord) *Dataset {
	ds := &Dataset{
		ID:           uuid.NewString(),
		Stations:     stations,
		Results:      results,
		Contaminants: Contaminants(results),
		CreatedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.datasets, oldest)
	}
	s.order = append(s.order, ds.ID)
	s.datasets[ds.ID] = ds
	return ds
}

// Get returns the dataset for an identifier, if it is still held.
func (s *Store) Get(id string) (*Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.datasets[id]
	return ds, ok
}

// Delete discards a dataset. Returns false when the id is unknown.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return false
	}
	delete(s.datasets, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len reports how many datasets are currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.datasets)
}
