package dto

import (
	"github.com/ForumApp/forum-service/internal/model"
	"github.com/ForumApp/forum-service/internal/pagination"
)

type GetCommentsResponse struct {
	Comments   []*model.FullComment `json:"comments"`
	Pagination pagination.Info      `json:"pagination"`
}

type CreateCommentResponse struct {
	Success bool              `json:"success"`
	Comment model.FullComment `json:"comment"`
}
