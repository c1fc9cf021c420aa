package service

import (
	"context"
	"errors"

	"github.com/ForumApp/forum-service/internal/model"
	"github.com/ForumApp/forum-service/internal/repository"
	"github.com/ForumApp/forum-service/internal/repository/postgres"
	"github.com/ForumApp/forum-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type likeService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newLikeService(logger *zap.Logger, repo *repository.Repository) Like {
	return &likeService{
		logger: logger,
		repo:   repo,
	}
}

func (s *likeService) Like(ctx context.Context, postID int64, userID uuid.UUID) (*model.Like, error) {
	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) to like: %s", postID, err.Error())
		return nil, ErrInternal
	}

	like, err := s.repo.Postgres.Like.Create(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, postgres.ErrAlreadyExists) {
			return nil, ErrAlreadyLiked
		}

		s.logger.Sugar().Errorf("failed to create user(%s) like on post(%d): %s", userID.String(), postID, err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, postID)

	return like, nil
}

func (s *likeService) Unlike(ctx context.Context, postID int64, userID uuid.UUID) error {
	deleted, err := s.repo.Postgres.Like.Delete(ctx, userID, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%s) like on post(%d): %s", userID.String(), postID, err.Error())
		return ErrInternal
	}
	if !deleted {
		return ErrLikeNotFound
	}

	s.invalidatePost(ctx, postID)

	return nil
}

// IsLiked never fails: any error on the check path degrades to false.
func (s *likeService) IsLiked(ctx context.Context, postID int64, userID uuid.UUID) bool {
	liked, err := s.repo.Postgres.Like.Exists(ctx, userID, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check user(%s) like on post(%d): %s", userID.String(), postID, err.Error())
		return false
	}

	return liked
}

func (s *likeService) invalidatePost(ctx context.Context, postID int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(postID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", postID, err.Error())
	}
}
