package api

import (
	"aistrategy/internal/app"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var errSessionNotFound = errors.New("strategy session not found")

// SessionStore keeps client sessions in memory for the life of the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: map[uuid.UUID]*app.Session{},
	}
}

func (s *SessionStore) Add(session *app.Session) uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session
	return id
}

func (s *SessionStore) Get(id uuid.UUID) (*app.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	return session, nil
}
