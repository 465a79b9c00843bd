package models

import (
	"time"

	"github.com/google/uuid"
)

// Meta carries the server-assigned fields shared by every mutable entity.
// The id is an opaque UUID string stored as the document key.
type Meta struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (m *Meta) DocID() string { return m.ID }

// EnsureID assigns a new identifier unless the payload already carries one.
func (m *Meta) EnsureID() {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
}

// StampCreated sets both timestamps unless already present.
func (m *Meta) StampCreated(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
}

func (m *Meta) StampUpdated(now time.Time) {
	m.UpdatedAt = now
}
