// Package conversation keeps the ordered message history of one chat session.
package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Roles held by the store. Tool messages are never committed.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one committed conversation entry
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage builds a message with a fresh ID and timestamp
func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// Store is an append-only, session-scoped message list. It grows without bound.
type Store struct {
	mu       sync.RWMutex
	messages []Message
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Append adds messages in order as a single atomic step. Missing IDs and
// timestamps are filled in.
func (s *Store) Append(msgs ...Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range msgs {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
		s.messages = append(s.messages, m)
	}
}

// All returns a copy of the history in insertion order
func (s *Store) All() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of committed messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Clear removes every message. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}
