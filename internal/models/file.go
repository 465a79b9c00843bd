package models

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// File is immutable once created and carries no updated_at.
type File struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	URL         string    `json:"url" bson:"url" binding:"required"`
	Filename    string    `json:"filename" bson:"filename" binding:"required"`
	ContentType string    `json:"content_type,omitempty" bson:"content_type,omitempty"`
	Size        int64     `json:"size,omitempty" bson:"size,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

func (f *File) DocID() string { return f.ID }

func (f *File) EnsureID() {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
}

func (f *File) StampCreated(now time.Time) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
}

// StampUpdated is a no-op: files never change after creation.
func (f *File) StampUpdated(time.Time) {}

type FileUpdate struct {
	URL      *string `json:"url"`
	Filename *string `json:"filename"`
}

func (u *FileUpdate) Patch() bson.M {
	patch := bson.M{}
	if u.URL != nil {
		patch["url"] = *u.URL
	}
	if u.Filename != nil {
		patch["filename"] = *u.Filename
	}
	return patch
}
