// Package store persists conversation transcripts. The in-memory
// backend lives for the process; sqlite adds durability across runs.
package store

import "time"

// TranscriptStore records sessions, their messages, and per-turn routing
// metadata.
type TranscriptStore interface {
	CreateSession(model string) (id string, err error)
	CompleteSession(id string) error
	AppendMessage(sessionID, role, content string) error
	RecordTurn(sessionID, query, route, tool string) error
	GetMessages(sessionID string) ([]SessionMessage, error)
	GetTurns(sessionID string) ([]TurnRecord, error)
	Close() error
}

// SessionMessage is a single transcript entry.
type SessionMessage struct {
	ID        int       `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// TurnRecord captures how one turn was routed.
type TurnRecord struct {
	ID        int       `json:"id"`
	Query     string    `json:"query"`
	Route     string    `json:"route"`
	Tool      string    `json:"tool"`
	CreatedAt time.Time `json:"createdAt"`
}
