package memory

import (
	"context"
	"sync"

	"github.com/Arquisoft/wichat-en2b-sub000/internal/models"
	"github.com/Arquisoft/wichat-en2b-sub000/internal/store"
)

// Store is the in-memory store.Store used by default and in tests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func New() *Store {
	return &Store{sessions: make(map[string]*models.Session)}
}

func (s *Store) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.Code]; ok {
		return store.ErrCodeTaken
	}
	s.sessions[session.Code] = session.Clone()
	return nil
}

func (s *Store) Get(_ context.Context, code string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[code]
	if !ok {
		return nil, store.ErrNotFound
	}
	return session.Clone(), nil
}

func (s *Store) Update(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[session.Code]
	if !ok {
		return store.ErrNotFound
	}
	if current.Version != session.Version {
		return store.ErrVersionConflict
	}
	session.Version++
	s.sessions[session.Code] = session.Clone()
	return nil
}
