package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NewMemoryStore creates a process-lifetime in-memory transcript store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memSession)}
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memSession
}

type memSession struct {
	model     string
	status    string
	messages  []SessionMessage
	turns     []TurnRecord
	createdAt time.Time
}

func (s *MemoryStore) CreateSession(model string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.sessions[id] = &memSession{
		model:     model,
		status:    "active",
		createdAt: time.Now(),
	}
	return id, nil
}

func (s *MemoryStore) CompleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	sess.status = "completed"
	return nil
}

func (s *MemoryStore) AppendMessage(sessionID, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}
	sess.messages = append(sess.messages, SessionMessage{
		ID:        len(sess.messages) + 1,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *MemoryStore) RecordTurn(sessionID, query, route, tool string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}
	sess.turns = append(sess.turns, TurnRecord{
		ID:        len(sess.turns) + 1,
		Query:     query,
		Route:     route,
		Tool:      tool,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *MemoryStore) GetMessages(sessionID string) ([]SessionMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	out := make([]SessionMessage, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

func (s *MemoryStore) GetTurns(sessionID string) ([]TurnRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	out := make([]TurnRecord, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
