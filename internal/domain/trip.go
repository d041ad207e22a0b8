// Package domain contains the core data types for the Trip Concierge service.
// This package has zero external dependencies and is imported by every other
// internal package (kv, store, pricing, proposal, handler).
package domain

import "time"

// Trip status values written by this subsystem. Status is deliberately an
// open string: surrounding subsystems stamp their own values (payment,
// ticketing) onto the same field and the repository accepts any of them.
const (
	StatusDraft = "Draft"
	StatusReady = "Ready"
)

// LastMessageLimit is the maximum number of runes of a message preserved on
// the parent trip's LastMessage preview field.
const LastMessageLimit = 120

// Trip is the root entity representing one customer's travel request.
// Every other record (messages, snapshot, draft, selection, proposal)
// attaches to a Trip by ID and is created lazily alongside it.
type Trip struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	LastMessage string    `json:"lastMessage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TripPatch carries optional updates to a Trip's mutable fields.
// Nil pointers mean "leave unchanged".
type TripPatch struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

// Message is a single chat message attached to a trip. Messages are
// append-only; appending one also refreshes the trip's LastMessage preview.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
