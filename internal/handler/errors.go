package handler

import (
	"errors"
	"net/http"

	"github.com/ForumApp/forum-service/internal/dto"
	"github.com/ForumApp/forum-service/internal/service"
	"github.com/ForumApp/forum-service/internal/storage"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized    = errors.New("user is not authorized")
	errInvalidPostID    = errors.New("invalid post ID")
	errInvalidCommentID = errors.New("invalid comment ID")
	errInvalidAuthorID  = errors.New("invalid author ID")
)

// respondError maps a service error to its HTTP status. Unexpected errors
// surface as a generic 500; the cause stays in the server logs.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := service.ErrInternal.Error()

	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrLikeNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrTitleAndContentRequired),
		errors.Is(err, service.ErrInvalidContentFormat),
		errors.Is(err, service.ErrEmptyCommentContent),
		errors.Is(err, storage.ErrFileMustBeImage),
		errors.Is(err, storage.ErrFileTooLarge):
		status = http.StatusBadRequest
		message = err.Error()
	}

	c.JSON(status, dto.NewBasicResponse(false, message))
}
