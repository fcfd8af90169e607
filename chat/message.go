// Package chat relays live messages between connected travelers and keeps
// the durable message history.
package chat

import (
	"errors"
	"time"
)

// Message is one stored chat message. Immutable once stored.
type Message struct {
	ID         int64     `json:"-" db:"id"`
	SenderID   string    `json:"sender_id" db:"sender_id"`
	ReceiverID string    `json:"receiver_id" db:"receiver_id"`
	Body       string    `json:"message" db:"message"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
}

// Event is an outbound frame on a live session.
type Event struct {
	Type      string     `json:"type"` // "message" | "error"
	SenderID  string     `json:"sender_id,omitempty"`
	Message   string     `json:"message,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// InboundFrame is what a client sends over its live session.
type InboundFrame struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

var (
	ErrEmptyMessage    = errors.New("empty message")
	ErrMissingReceiver = errors.New("missing receiver")
	ErrEndpointClosed  = errors.New("endpoint closed")
	ErrEndpointBusy    = errors.New("endpoint send buffer full")
)

func messageEvent(m Message) Event {
	ts := m.Timestamp
	return Event{Type: "message", SenderID: m.SenderID, Message: m.Body, Timestamp: &ts}
}

func errorEvent(msg string) Event {
	return Event{Type: "error", Error: msg}
}
