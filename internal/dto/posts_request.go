package dto

import "encoding/json"

// CreatePostRequest arrives as multipart form data; Content is the
// stringified document tree the editor produced. The cover is either a
// URL in this form or an uploaded file handled separately.
type CreatePostRequest struct {
	Title   string `form:"title" binding:"required,min=1"`
	Content string `form:"content" binding:"required"`
	Cover   string `form:"cover"`
}

type EditPostRequest struct {
	Title   *string         `json:"title"`
	Content json.RawMessage `json:"content"`
	Cover   *string         `json:"cover"`
}

type GetPostsRequest struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	AuthorID string `form:"authorId"`
}

type BulkDeletePostsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}
