// Package session keeps the per-chat conversation state of in-flight
// dialogs. State lives only in memory: a conversation never outlives
// the process and is dropped as soon as its flow completes.
package session

import (
	"sync"
	"time"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
)

// Store holds one Conversation per chat behind a mutex. The update
// loop is the only writer during normal operation; the mutex guards
// against the background sweeper running concurrently.
type Store struct {
	mu            sync.Mutex
	conversations map[int64]*domain.Conversation
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{conversations: make(map[int64]*domain.Conversation)}
}

// Get returns the conversation for a chat, or nil when the chat is idle
func (s *Store) Get(chatID int64) *domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations[chatID]
}

// Begin starts a fresh conversation for a chat, superseding any
// previous one.
func (s *Store) Begin(chatID int64, step domain.Step) *domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := &domain.Conversation{
		ChatID:    chatID,
		Step:      step,
		UpdatedAt: time.Now(),
	}
	s.conversations[chatID] = conv
	return conv
}

// Touch refreshes the conversation's activity timestamp after a step
func (s *Store) Touch(conv *domain.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv.UpdatedAt = time.Now()
}

// Clear discards a chat's conversation state
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, chatID)
}

// Sweep removes conversations idle for longer than ttl and returns
// how many were dropped.
func (s *Store) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for chatID, conv := range s.conversations {
		if conv.UpdatedAt.Before(cutoff) {
			delete(s.conversations, chatID)
			removed++
		}
	}
	return removed
}
