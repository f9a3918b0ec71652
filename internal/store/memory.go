// internal/store/memory.go
//
// In-memory store of solver sessions for the HTTP API.
//
// Characteristics:
//   - Entries are keyed by a random ID.
//   - The map is guarded by an RWMutex; each entry carries its own mutex
//     because solver.Session is not safe for concurrent use.
//   - Entries idle longer than the TTL are dropped by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrNotFound is returned by Get for an unknown or expired ID.
var ErrNotFound = errors.New("session not found")

// Entry is one stored session. Use Do to touch the session.
type Entry struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
	session  *solver.Session
}

// Do runs fn with exclusive access to the session.
func (e *Entry) Do(fn func(*solver.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = time.Now()
	return fn(e.session)
}

func (e *Entry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastUsed
}

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Create stores sess under a new ID.
	Create(ctx context.Context, sess *solver.Session) (*Entry, error)

	// Get retrieves a session entry by ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete removes a session; deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep drops sessions idle for longer than ttl and reports how many went.
	Sweep(ctx context.Context, ttl time.Duration) int

	// Len is the number of stored sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards entries map
	entries map[string]*Entry // keyed by Entry.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{entries: make(map[string]*Entry)}
}

func (m *memory) Create(ctx context.Context, sess *solver.Session) (*Entry, error) {
	now := time.Now()
	e := &Entry{ID: randomID(), CreatedAt: now, lastUsed: now, session: sess}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return e, nil
}

func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if e.idleSince().Before(cutoff) {
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

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
