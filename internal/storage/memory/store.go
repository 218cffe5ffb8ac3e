// Package memory provides the in-process conversation store. This is the
// default: conversation state is session-scoped, so nothing needs to
// survive the process.
package memory

import (
	"context"
	"sync"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/ports"
)

// Store is an in-memory append-only message log.
type Store struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

var _ ports.ConversationStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Append adds a message to the end of the log.
func (s *Store) Append(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

// Messages returns the log in append order. The returned slice is a copy;
// the log itself is never exposed for mutation.
func (s *Store) Messages(_ context.Context) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// Close implements ports.ConversationStore.
func (s *Store) Close() error {
	return nil
}
