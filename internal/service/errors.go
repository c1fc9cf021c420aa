package service

import "errors"

var (
	ErrInternal                = errors.New("internal server error")
	ErrPostNotFound            = errors.New("post not found")
	ErrCommentNotFound         = errors.New("comment not found")
	ErrLikeNotFound            = errors.New("like record not found")
	ErrForbidden               = errors.New("you do not have permission to perform this action")
	ErrAlreadyLiked            = errors.New("you already liked this post")
	ErrTitleAndContentRequired = errors.New("title and content are required")
	ErrInvalidContentFormat    = errors.New("invalid content format")
	ErrEmptyCommentContent     = errors.New("comment content is required")
)
