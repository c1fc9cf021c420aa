package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ForumApp/forum-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) likesCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	like, err := h.services.Like.Like(c.Request.Context(), postID, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateLikeResponse{Like: *like})
}

func (h *Handler) likesDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	if err := h.services.Like.Unlike(c.Request.Context(), postID, user.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "like removed successfully"))
}

// likesCheck never reports an error: with no session, a bad id, or a
// failed lookup the answer is simply false.
func (h *Handler) likesCheck(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil || user == nil {
		c.JSON(http.StatusOK, dto.IsLikedResponse{IsLiked: false})
		return
	}

	isLiked := h.services.Like.IsLiked(c.Request.Context(), postID, user.ID)

	c.JSON(http.StatusOK, dto.IsLikedResponse{IsLiked: isLiked})
}
