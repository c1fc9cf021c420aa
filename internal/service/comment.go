package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ForumApp/forum-service/internal/dto"
	"github.com/ForumApp/forum-service/internal/model"
	"github.com/ForumApp/forum-service/internal/pagination"
	"github.com/ForumApp/forum-service/internal/repository"
	"github.com/ForumApp/forum-service/internal/repository/postgres"
	"github.com/ForumApp/forum-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
	}
}

func (s *commentService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.FullComment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyCommentContent
	}

	if _, err := s.repo.Postgres.Post.FindByID(ctx, input.PostID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) for comment: %s", input.PostID, err.Error())
		return nil, ErrInternal
	}

	comment := model.Comment{
		PostID:   input.PostID,
		AuthorID: authorID,
		Content:  content,
	}

	createdComment, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidate(ctx, input.PostID)

	return createdComment, nil
}

func (s *commentService) List(ctx context.Context, filter postgres.CommentFilter, page int, limit int) (*dto.GetCommentsResponse, error) {
	pagination.Normalize(&page, &limit, DEFAULT_LIMIT, MAX_LIMIT)

	cacheKey := redisrepo.CommentsPageKey(commentScope(filter), limit, page)

	cachedPage, err := redisrepo.Get[dto.GetCommentsResponse](s.repo.Redis.Default, ctx, cacheKey)
	if err == nil && cachedPage != nil {
		return cachedPage, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get comments page(%s) from redis: %s", cacheKey, err.Error())
	}

	total, err := s.repo.Postgres.Comment.Count(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count comments: %s", err.Error())
		return nil, ErrInternal
	}

	response := &dto.GetCommentsResponse{
		Comments:   []*model.FullComment{},
		Pagination: pagination.New(total, page, limit),
	}

	if total > 0 {
		comments, err := s.repo.Postgres.Comment.List(ctx, filter, limit, pagination.Offset(page, limit))
		if err != nil {
			s.logger.Sugar().Errorf("failed to list comments from postgres: %s", err.Error())
			return nil, ErrInternal
		}

		response.Comments = append(response.Comments, comments...)
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, cacheKey, response, time.Minute); err != nil {
		s.logger.Sugar().Errorf("failed to set comments page(%s) in redis: %s", cacheKey, err.Error())
	}

	return response, nil
}

func commentScope(filter postgres.CommentFilter) string {
	scope := "all"
	if filter.PostID != nil {
		scope = fmt.Sprintf("post-%d", *filter.PostID)
	}
	if filter.AuthorID != nil {
		scope += "-author-" + filter.AuthorID.String()
	}

	return scope
}

func (s *commentService) Update(ctx context.Context, id int64, editorID uuid.UUID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyCommentContent
	}

	existing, err := s.repo.Postgres.Comment.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%d) for update: %s", id, err.Error())
		return nil, ErrInternal
	}

	if existing.Comment.AuthorID != editorID {
		return nil, ErrForbidden
	}

	updatedComment, err := s.repo.Postgres.Comment.Update(ctx, id, content)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update comment(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	s.invalidate(ctx, existing.Comment.PostID)

	return updatedComment, nil
}

func (s *commentService) Delete(ctx context.Context, id int64, editorID uuid.UUID) error {
	existing, err := s.repo.Postgres.Comment.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%d) for deletion: %s", id, err.Error())
		return ErrInternal
	}

	if existing.Comment.AuthorID != editorID {
		return ErrForbidden
	}

	if err := s.repo.Postgres.Comment.Delete(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%d): %s", id, err.Error())
		return ErrInternal
	}

	s.invalidate(ctx, existing.Comment.PostID)

	return nil
}

// invalidate drops cached comment pages and the parent post, whose
// comment count just changed.
func (s *commentService) invalidate(ctx context.Context, postID int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(postID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", postID, err.Error())
	}

	keys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.COMMENTS_PAGE_PATTERN).Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to list comments page keys in redis: %s", err.Error())
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate comments pages in redis: %s", err.Error())
	}
}
