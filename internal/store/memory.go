package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-widget/internal/weather"
)

var (
	// ErrNotFound is returned when no data is available for a given location.
	ErrNotFound = errors.New("no weather data for location")
)

// Record is a snapshot together with the time it was fetched.
type Record struct {
	Snapshot  weather.Snapshot `json:"snapshot"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// SnapshotHistory holds a time-ordered list of records for a location.
type SnapshotHistory struct {
	Records []Record
}

// MemoryStore is a concurrency-safe in-memory history of loaded snapshots.
// Nothing survives a restart.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: history
	data map[string]*SnapshotHistory

	// retention configuration
	maxHistory int           // max number of records per location
	maxAge     time.Duration // optional max age for records
	now        func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*SnapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save appends a record under the snapshot's location and enforces retention.
func (s *MemoryStore) Save(rec Record) {
	key := rec.Snapshot.Location.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &SnapshotHistory{}
		s.data[key] = history
	}

	history.Records = append(history.Records, rec)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Records) > s.maxHistory {
		over := len(history.Records) - s.maxHistory
		history.Records = history.Records[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Records); i++ {
			if !history.Records[i].FetchedAt.Before(cutoff) {
				break
			}
		}
		history.Records = history.Records[i:]
	}
}

// GetLatest returns the most recent record for a location.
func (s *MemoryStore) GetLatest(loc weather.Location) (Record, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Records) == 0 {
		return Record{}, ErrNotFound
	}
	return history.Records[len(history.Records)-1], nil
}

// GetRange returns all records for a location fetched between from and to (inclusive).
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]Record, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Records) == 0 {
		return nil, ErrNotFound
	}

	var result []Record
	for _, rec := range history.Records {
		if !rec.FetchedAt.Before(from) && !rec.FetchedAt.After(to) {
			result = append(result, rec)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
