// internal/store/memory.go
//
// In-memory registry of live game sessions.
// Sessions exist only for the life of the process; nothing is written to disk.
//
// Characteristics:
//   - Stores *game.Session values keyed by ID in a map.
//   - The map is guarded by an RWMutex; each entry also carries its own mutex
//     so Update serializes moves on one session without blocking the others.
//   - Entries remember when they were last touched so idle games can be pruned.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/mastermind/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Update runs fn with exclusive access to the session.
	// fn's error is returned unchanged.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete discards a session. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Prune drops sessions untouched for longer than idle and reports how many.
	Prune(ctx context.Context, idle time.Duration) int

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	mu      sync.Mutex // serializes moves on sess
	sess    *game.Session
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards entries
	entries map[string]*entry // keyed by Session.ID()
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{entries: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID()] = &entry{sess: s, touched: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e.sess, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = m.now()
	return fn(e.sess)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if ctx.Err() != nil {
			break
		}
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
