package dto

import (
	"github.com/ForumApp/forum-service/internal/model"
	"github.com/ForumApp/forum-service/internal/pagination"
)

type GetPostsResponse struct {
	Posts      []*model.PostCard `json:"posts"`
	Pagination pagination.Info   `json:"pagination"`
}

type CreatePostResponse struct {
	Success bool       `json:"success"`
	Post    model.Post `json:"post"`
}

// BulkDeleteResponse reports every id independently: the batch is
// best-effort, a failed item never blocks the rest.
type BulkDeleteResponse struct {
	Deleted []int64 `json:"deleted"`
	Failed  []int64 `json:"failed"`
}
