package storage

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ericogr/energy-duel/internal/game"
)

type memoryRepository struct {
	mu       sync.Mutex
	nextID   uint
	sessions map[string][]byte
	touched  map[string]time.Time
}

// NewMemoryRepository returns a map-backed Repository. Sessions are stored
// as JSON snapshots so callers never share state with the store, matching
// the database-backed repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{sessions: map[string][]byte{}, touched: map[string]time.Time{}}
}

func (r *memoryRepository) put(s *game.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.sessions[s.Code] = b
	r.touched[s.Code] = s.UpdatedAt
	return nil
}

func (r *memoryRepository) CreateSession(s *game.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	s.ID = r.nextID
	s.CreatedAt = now
	s.UpdatedAt = now
	return r.put(s)
}

func (r *memoryRepository) GetSessionByCode(code string) (*game.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.sessions[code]
	if !ok {
		return nil, ErrNotFound
	}
	var s game.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *memoryRepository) UpdateSession(s *game.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.Code]; !ok {
		return ErrNotFound
	}
	s.UpdatedAt = time.Now()
	return r.put(s)
}

func (r *memoryRepository) DeleteSession(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[code]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, code)
	delete(r.touched, code)
	return nil
}

func (r *memoryRepository) PurgeIdleSessions(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for code, at := range r.touched {
		if !at.After(cutoff) {
			delete(r.sessions, code)
			delete(r.touched, code)
			n++
		}
	}
	return n, nil
}
