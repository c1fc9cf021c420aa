package dto

import "github.com/ForumApp/forum-service/internal/model"

type CreateLikeResponse struct {
	Like model.Like `json:"like"`
}

// IsLikedResponse never reports an error to the client: any failure on
// the check path degrades to false.
type IsLikedResponse struct {
	IsLiked bool `json:"isLiked"`
}
