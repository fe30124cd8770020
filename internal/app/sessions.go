package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_adlab/internal/adapters/observability"
	"hotel_adlab/internal/domain"
)

// SessionManager owns every live session. Sessions share the catalog and the
// recommender but nothing mutable.
type SessionManager struct {
	cat      Catalog
	rec      *Recommender
	pageSize int

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(cat Catalog, rec *Recommender, pageSize int) *SessionManager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &SessionManager{cat: cat, rec: rec, pageSize: pageSize, sessions: map[string]*Session{}}
}

func (m *SessionManager) Create() *Session {
	s := NewSession(uuid.NewString(), m.cat, m.rec, m.pageSize)
	m.mu.Lock()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()
	observability.SetActiveSessions(n)
	log.Info().Str("session", s.ID).Msg("session started")
	return s
}

func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *SessionManager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Close()
	observability.SetActiveSessions(n)
	log.Info().Str("session", id).Msg("session closed")
	return nil
}

// Reap closes sessions idle for longer than idle and returns how many were closed.
func (m *SessionManager) Reap(now time.Time, idle time.Duration) int {
	var stale []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > idle {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		observability.SetActiveSessions(n)
		log.Info().Int("reaped", len(stale)).Int("active", n).Msg("idle sessions closed")
	}
	return len(stale)
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll is called on shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = map[string]*Session{}
	m.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
	observability.SetActiveSessions(0)
}

func (m *SessionManager) PageSize() int { return m.pageSize }
