// internal/judge/judgetest/store.go
//
// In-memory session store for the judge stub.
//   - Sessions keyed by id in a map guarded by an RWMutex.
//   - Delete simulates a session lapsing server-side.

package judgetest

import (
	"errors"
	"sync"
)

var errNotFound = errors.New("session not found")

// store holds live sessions.
type store struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newStore() *store {
	return &store{sessions: make(map[string]*session)}
}

func (m *store) save(s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *store) get(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (m *store) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *store) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
