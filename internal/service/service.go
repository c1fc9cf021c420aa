package service

import (
	"context"
	"mime/multipart"

	"github.com/ForumApp/forum-service/internal/document"
	"github.com/ForumApp/forum-service/internal/dto"
	"github.com/ForumApp/forum-service/internal/model"
	"github.com/ForumApp/forum-service/internal/repository"
	"github.com/ForumApp/forum-service/internal/repository/postgres"
	"github.com/ForumApp/forum-service/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DEFAULT_LIMIT = 16
	MAX_LIMIT     = 50
)

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest, cover *multipart.FileHeader) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	List(ctx context.Context, authorID *uuid.UUID, page int, limit int) (*dto.GetPostsResponse, error)
	Update(ctx context.Context, id int64, editorID uuid.UUID, input dto.EditPostRequest) (*model.Post, error)
	Delete(ctx context.Context, id int64, editorID uuid.UUID) error
	BulkDelete(ctx context.Context, ids []int64, editorID uuid.UUID) *dto.BulkDeleteResponse
}

type Comment interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.FullComment, error)
	List(ctx context.Context, filter postgres.CommentFilter, page int, limit int) (*dto.GetCommentsResponse, error)
	Update(ctx context.Context, id int64, editorID uuid.UUID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id int64, editorID uuid.UUID) error
}

type Like interface {
	Like(ctx context.Context, postID int64, userID uuid.UUID) (*model.Like, error)
	Unlike(ctx context.Context, postID int64, userID uuid.UUID) error
	IsLiked(ctx context.Context, postID int64, userID uuid.UUID) bool
}

type UserCache interface {
	CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.CachedUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type Service struct {
	Post
	Comment
	Like
	UserCache
}

func New(logger *zap.Logger, repo *repository.Repository, store *storage.Storage, renderer *document.Renderer) *Service {
	return &Service{
		Post:      newPostService(logger, repo, store, renderer),
		Comment:   newCommentService(logger, repo),
		Like:      newLikeService(logger, repo),
		UserCache: newUserCacheService(logger, repo),
	}
}
