package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound means a request referenced a session this process
// does not hold.
var ErrSessionNotFound = errors.New("session not found")

// Manager is the uuid-keyed registry of live sessions, so several
// dashboard tabs can each hold independent state.
type Manager struct {
	mu               sync.RWMutex
	sessions         map[string]*Session
	defaultTolerance float64
	maxPivotDepth    int
}

// NewManager creates an empty registry. New sessions start at the given
// tolerance fraction and sort-key depth.
func NewManager(defaultTolerance float64, maxPivotDepth int) *Manager {
	return &Manager{
		sessions:         make(map[string]*Session),
		defaultTolerance: defaultTolerance,
		maxPivotDepth:    maxPivotDepth,
	}
}

// Create registers a new session.
func (m *Manager) Create() *Session {
	s := New(uuid.NewString(), m.defaultTolerance, m.maxPivotDepth)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get resolves a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// IDs lists the registered session ids, sorted for stable output.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
