package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/ForumApp/forum-service/internal/document"
	"github.com/ForumApp/forum-service/internal/dto"
	"github.com/ForumApp/forum-service/internal/model"
	"github.com/ForumApp/forum-service/internal/pagination"
	"github.com/ForumApp/forum-service/internal/repository"
	"github.com/ForumApp/forum-service/internal/repository/postgres"
	"github.com/ForumApp/forum-service/internal/repository/redisrepo"
	"github.com/ForumApp/forum-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type postService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	storage  *storage.Storage
	renderer *document.Renderer
}

func newPostService(logger *zap.Logger, repo *repository.Repository, store *storage.Storage, renderer *document.Renderer) Post {
	return &postService{
		logger:   logger,
		repo:     repo,
		storage:  store,
		renderer: renderer,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest, cover *multipart.FileHeader) (*model.Post, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleAndContentRequired
	}

	content, err := document.Parse(input.Content)
	if err != nil {
		return nil, ErrInvalidContentFormat
	}
	if content.IsEmpty() {
		return nil, ErrTitleAndContentRequired
	}

	post := model.Post{
		AuthorID: authorID,
		Title:    input.Title,
		Content:  content,
	}

	coverURL, err := s.resolveCover(ctx, input.Cover, cover)
	if err != nil {
		return nil, err
	}
	post.Cover = coverURL

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidatePages(ctx)

	return createdPost, nil
}

func (s *postService) resolveCover(ctx context.Context, coverURL string, cover *multipart.FileHeader) (*string, error) {
	if cover != nil {
		file, err := cover.Open()
		if err != nil {
			s.logger.Sugar().Errorf("failed to open cover file: %s", err.Error())
			return nil, ErrInternal
		}
		defer file.Close()

		url, err := s.storage.UploadCover(ctx, file, cover)
		if err != nil {
			if errors.Is(err, storage.ErrFileMustBeImage) || errors.Is(err, storage.ErrFileTooLarge) {
				return nil, err
			}
			s.logger.Sugar().Errorf("failed to upload cover to object storage: %s", err.Error())
			return nil, ErrInternal
		}

		return &url, nil
	}

	if coverURL = strings.TrimSpace(coverURL); coverURL != "" {
		return &coverURL, nil
	}

	return nil, nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	cachedPost, err := redisrepo.Get[model.FullPost](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil && cachedPost != nil {
		return cachedPost, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	post.HTML = s.renderer.Render(post.Post.Content)

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
	}

	return post, nil
}

func (s *postService) List(ctx context.Context, authorID *uuid.UUID, page int, limit int) (*dto.GetPostsResponse, error) {
	pagination.Normalize(&page, &limit, DEFAULT_LIMIT, MAX_LIMIT)

	scope := "all"
	if authorID != nil {
		scope = authorID.String()
	}
	cacheKey := redisrepo.PostsPageKey(scope, limit, page)

	cachedPage, err := redisrepo.Get[dto.GetPostsResponse](s.repo.Redis.Default, ctx, cacheKey)
	if err == nil && cachedPage != nil {
		return cachedPage, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get posts page(%s) from redis: %s", cacheKey, err.Error())
	}

	filter := postgres.PostFilter{AuthorID: authorID}

	total, err := s.repo.Postgres.Post.Count(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts: %s", err.Error())
		return nil, ErrInternal
	}

	response := &dto.GetPostsResponse{
		Posts:      []*model.PostCard{},
		Pagination: pagination.New(total, page, limit),
	}

	if total > 0 {
		posts, err := s.repo.Postgres.Post.List(ctx, filter, limit, pagination.Offset(page, limit))
		if err != nil {
			s.logger.Sugar().Errorf("failed to list posts from postgres: %s", err.Error())
			return nil, ErrInternal
		}

		for _, post := range posts {
			response.Posts = append(response.Posts, &model.PostCard{
				ID:        post.Post.ID,
				AuthorID:  post.Post.AuthorID,
				Title:     post.Post.Title,
				Cover:     post.Post.Cover,
				Preview:   document.ExtractText(post.Post.Content),
				Author:    post.Author,
				CreatedAt: post.Post.CreatedAt,
			})
		}
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, cacheKey, response, time.Minute*5); err != nil {
		s.logger.Sugar().Errorf("failed to set posts page(%s) in redis: %s", cacheKey, err.Error())
	}

	return response, nil
}

func (s *postService) Update(ctx context.Context, id int64, editorID uuid.UUID, input dto.EditPostRequest) (*model.Post, error) {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) for update: %s", id, err.Error())
		return nil, ErrInternal
	}

	if existing.Post.AuthorID != editorID {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleAndContentRequired
		}
		updates["title"] = *input.Title
	}

	if len(input.Content) > 0 {
		content, err := document.Parse([]byte(input.Content))
		if err != nil {
			return nil, ErrInvalidContentFormat
		}
		if content.IsEmpty() {
			return nil, ErrTitleAndContentRequired
		}
		updates["content"] = content
	}

	if input.Cover != nil {
		if cover := strings.TrimSpace(*input.Cover); cover != "" {
			updates["cover"] = cover
		} else {
			updates["cover"] = nil
		}
	}

	if len(updates) == 0 {
		return &existing.Post, nil
	}

	updatedPost, err := s.repo.Postgres.Post.Update(ctx, id, updates)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update post(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, id)
	s.invalidatePages(ctx)

	return updatedPost, nil
}

func (s *postService) Delete(ctx context.Context, id int64, editorID uuid.UUID) error {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) for deletion: %s", id, err.Error())
		return ErrInternal
	}

	if existing.Post.AuthorID != editorID {
		return ErrForbidden
	}

	if err := s.repo.Postgres.Post.Delete(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", id, err.Error())
		return ErrInternal
	}

	s.invalidatePost(ctx, id)
	s.invalidatePages(ctx)

	return nil
}

// BulkDelete attempts every id independently: one failed item never blocks
// the rest, and the outcome of each is reported back.
func (s *postService) BulkDelete(ctx context.Context, ids []int64, editorID uuid.UUID) *dto.BulkDeleteResponse {
	response := &dto.BulkDeleteResponse{
		Deleted: []int64{},
		Failed:  []int64{},
	}

	for _, id := range ids {
		if err := s.Delete(ctx, id, editorID); err != nil {
			s.logger.Sugar().Errorf("bulk delete: failed to delete post(%d) for user(%s): %s", id, editorID.String(), err.Error())
			response.Failed = append(response.Failed, id)
			continue
		}

		response.Deleted = append(response.Deleted, id)
	}

	return response
}

func (s *postService) invalidatePost(ctx context.Context, id int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(id)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", id, err.Error())
	}
}

func (s *postService) invalidatePages(ctx context.Context) {
	keys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.POSTS_PAGE_PATTERN).Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to list posts page keys in redis: %s", err.Error())
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate posts pages in redis: %s", err.Error())
	}
}
