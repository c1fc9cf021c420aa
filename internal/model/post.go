package model

import (
	"time"

	"github.com/ForumApp/forum-service/internal/document"
	"github.com/google/uuid"
)

type Post struct {
	ID           int64          `json:"id"`
	AuthorID     uuid.UUID      `json:"author_id"`
	Title        string         `json:"title"`
	Content      *document.Node `json:"content"`
	Cover        *string        `json:"cover"`
	LikeCount    int64          `json:"like_count"`
	CommentCount int64          `json:"comment_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// FullPost is the detail-view shape: the post with its author and the
// server-rendered HTML of its content.
type FullPost struct {
	Post   Post       `json:"post"`
	Author UserAuthor `json:"author"`
	HTML   string     `json:"html"`
}

// PostCard is the list-view shape: no content tree, just the plain-text
// preview extracted from it. Truncation for the card is client-side.
type PostCard struct {
	ID        int64      `json:"id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Title     string     `json:"title"`
	Cover     *string    `json:"cover"`
	Preview   string     `json:"preview"`
	Author    UserAuthor `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}
