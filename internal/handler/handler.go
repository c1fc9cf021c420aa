package handler

import (
	"context"
	"os"

	"github.com/ForumApp/forum-service/internal/metrics"
	"github.com/ForumApp/forum-service/internal/model"
	"github.com/ForumApp/forum-service/internal/service"
	"github.com/ForumApp/forum-service/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/api/v1")
	{
		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsList)
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.POST("/bulk-delete", h.authMiddleware, h.postsBulkDelete)

			post := posts.Group("/:postID")
			{
				post.GET("", h.postsGetByID)
				post.PATCH("", h.authMiddleware, h.postsUpdate)
				post.DELETE("", h.authMiddleware, h.postsDelete)
			}
		}

		comments := v1.Group("/comments")
		{
			comments.GET("", h.commentsList)
			comments.POST("", h.authMiddleware, h.commentsCreate)

			comment := comments.Group("/:commentID")
			{
				comment.PATCH("", h.authMiddleware, h.commentsUpdate)
				comment.DELETE("", h.authMiddleware, h.commentsDelete)
			}
		}

		likes := v1.Group("/likes")
		{
			likes.POST("/:postID", h.authMiddleware, h.likesCreate)
			likes.DELETE("/:postID", h.authMiddleware, h.likesDelete)
			likes.GET("/check/:postID", h.notRequiredAuthMiddleware, h.likesCheck)
		}
	}

	return r
}

func (h *Handler) getUserDataFromAccessTokenClaims(ctx context.Context, accessToken string) (*model.CachedUser, error) {
	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, err
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	return h.services.UserCache.CreateOrGet(ctx, id, accessToken)
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.CachedUser {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.CachedUser)
	if !ok {
		return nil
	}

	return &user
}
