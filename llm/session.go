package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultHistoryLimit caps the number of messages a session keeps in
// memory. The durable transcript store keeps the full record, so trimming
// here only narrows what gets replayed into prompts.
const DefaultHistoryLimit = 40

// Session holds the append-only conversation history for one interactive
// run. It is a single-writer structure: exactly one turn is in flight at
// a time, so no locking is needed.
type Session struct {
	messages     []Message
	historyLimit int
	debugFile    *os.File
}

type SessionOption func(*Session)

// WithHistoryLimit overrides the message window cap. Zero or negative
// means unlimited.
func WithHistoryLimit(limit int) SessionOption {
	return func(s *Session) {
		s.historyLimit = limit
	}
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{historyLimit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnableDebug opens a debug file that receives every appended message.
func (s *Session) EnableDebug(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	s.debugFile = f
	return nil
}

func (s *Session) Close() {
	if s.debugFile != nil {
		s.debugFile.Close()
	}
}

// Append adds a message and enforces the window cap, dropping the oldest
// messages once the limit is exceeded.
func (s *Session) Append(role Role, content string) {
	s.messages = append(s.messages, Message{Role: role, Content: content})
	if s.historyLimit > 0 && len(s.messages) > s.historyLimit {
		s.messages = s.messages[len(s.messages)-s.historyLimit:]
	}
	s.logMessage(string(role), content)
}

// Messages returns the current history window. The returned slice shares
// the underlying array; do not modify.
func (s *Session) Messages() []Message {
	return s.messages
}

func (s *Session) Len() int {
	return len(s.messages)
}

// RenderTranscript flattens the history into role-tagged lines for
// embedding into stage prompts.
func (s *Session) RenderTranscript() string {
	if len(s.messages) == 0 {
		return "(no previous conversation)"
	}
	var b strings.Builder
	for _, m := range s.messages {
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Session) logMessage(label string, content string) {
	if s.debugFile == nil {
		return
	}
	timestamp := time.Now().Format(time.RFC3339)
	s.debugFile.WriteString(fmt.Sprintf("[%s] === %s ===\n", timestamp, label))
	s.debugFile.WriteString(content)
	s.debugFile.WriteString("\n\n")
}
