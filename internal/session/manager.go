package session

import (
	"sync"
	"time"
)

// Manager owns the active page sessions.
type Manager struct {
	client       Client
	pollInterval time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager backed by the given upstream client.
func NewManager(client Client, pollInterval time.Duration) *Manager {
	return &Manager{
		client:       client,
		pollInterval: pollInterval,
		sessions:     make(map[string]*Session),
	}
}

// Create opens a new page session and starts its poller.
func (m *Manager) Create() *Session {
	s := New(m.client, m.pollInterval)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns an active session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close tears down one session. It reports whether the session existed.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
	return ok
}

// CloseAll tears down every active session, for server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
