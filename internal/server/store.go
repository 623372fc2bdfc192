package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sellerpulse/sellerpulse/internal/report"
)

// ChatMessage is one transcript entry.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Error     bool      `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Store holds the session state: the two uploaded record sets and the chat
// transcript. Each record set is replaced atomically on re-upload; there
// is no persistence across restarts.
type Store struct {
	mu        sync.RWMutex
	orders    []report.OrderRecord
	inventory []report.InventoryItem
	messages  []ChatMessage
}

// NewStore creates an empty store with the greeting already in the
// transcript.
func NewStore(greeting string) *Store {
	s := &Store{}
	s.AppendMessage("assistant", greeting, false)
	return s
}

// SetOrders replaces the order record set.
func (s *Store) SetOrders(orders []report.OrderRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

// SetInventory replaces the inventory record set.
func (s *Store) SetInventory(inventory []report.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = inventory
}

// Snapshot returns the current record sets. The slices are shared, never
// mutated in place; uploads swap in fresh ones.
func (s *Store) Snapshot() ([]report.OrderRecord, []report.InventoryItem) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders, s.inventory
}

// AppendMessage adds a transcript entry and returns it.
func (s *Store) AppendMessage(role, text string, isError bool) ChatMessage {
	msg := ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Error:     isError,
		Timestamp: time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return msg
}

// History returns a copy of the transcript.
func (s *Store) History() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}
