package model

import (
	"time"

	"github.com/google/uuid"
)

// Like is unique per (user, post); the store enforces it with a uniqueness
// constraint rather than a read-then-write check.
type Like struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
