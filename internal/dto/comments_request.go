package dto

type CreateCommentRequest struct {
	PostID  int64  `json:"postId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type EditCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type GetCommentsRequest struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	PostID   string `form:"postId"`
	AuthorID string `form:"authorId"`
}
