package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

// MemoryStore in-memory хранилище сессий мастера (вариант по умолчанию)
// Сессии короткоживущие и не переживают рестарт сервиса; для переживания
// рестартов используется PostgreSQL-вариант (Repository)
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	expiry   map[string]time.Time
}

// NewMemoryStore создает новое in-memory хранилище сессий
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]byte),
		expiry:   make(map[string]time.Time),
	}
}

// Сессии хранятся сериализованными, чтобы вызывающий код всегда получал
// независимую копию и не мог изменить хранимое состояние мимо Update
func encode(session *domain.Session) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal session: %v", ErrSerialize, err)
	}
	return data, nil
}

// Create сохраняет новую сессию
func (s *MemoryStore) Create(_ context.Context, session *domain.Session) error {
	data, err := encode(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = data
	s.expiry[session.ID] = session.ExpiresAt
	return nil
}

// Get читает сессию по ID
// Истекшая сессия считается отсутствующей
func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	data, ok := s.sessions[id]
	expiresAt, hasExpiry := s.expiry[id]
	s.mu.RUnlock()

	if !ok || (hasExpiry && time.Now().After(expiresAt)) {
		return nil, ErrSessionNotFound
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: unmarshal session: %v", ErrSerialize, err)
	}
	return &session, nil
}

// Update перезаписывает состояние сессии
func (s *MemoryStore) Update(_ context.Context, session *domain.Session) error {
	data, err := encode(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return ErrSessionNotFound
	}
	s.sessions[session.ID] = data
	s.expiry[session.ID] = session.ExpiresAt
	return nil
}

// Delete удаляет сессию
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	delete(s.expiry, id)
	return nil
}

// DeleteExpired удаляет истекшие сессии, возвращает количество удаленных
func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, expiresAt := range s.expiry {
		if !now.Before(expiresAt) {
			delete(s.sessions, id)
			delete(s.expiry, id)
			removed++
		}
	}
	return removed, nil
}
