package postgres

import (
	"context"

	"github.com/ForumApp/forum-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostFilter narrows post list queries.
type PostFilter struct {
	AuthorID *uuid.UUID
}

// CommentFilter narrows comment list queries.
type CommentFilter struct {
	PostID   *int64
	AuthorID *uuid.UUID
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	List(ctx context.Context, filter PostFilter, limit int, offset int) ([]*model.FullPost, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.FullComment, error)
	FindByID(ctx context.Context, id int64) (*model.FullComment, error)
	List(ctx context.Context, filter CommentFilter, limit int, offset int) ([]*model.FullComment, error)
	Count(ctx context.Context, filter CommentFilter) (int64, error)
	Update(ctx context.Context, id int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type Like interface {
	Create(ctx context.Context, userID uuid.UUID, postID int64) (*model.Like, error)
	Delete(ctx context.Context, userID uuid.UUID, postID int64) (bool, error)
	Exists(ctx context.Context, userID uuid.UUID, postID int64) (bool, error)
}

type UserCache interface {
	Create(ctx context.Context, cachedUser model.CachedUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type PostgresRepository struct {
	Post
	Comment
	Like
	UserCache
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post:      newPostRepo(db),
		Comment:   newCommentRepo(db),
		Like:      newLikeRepo(db),
		UserCache: newUserCacheRepo(db),
	}
}
