package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ForumApp/forum-service/internal/dto"
	"github.com/ForumApp/forum-service/internal/model"
	"github.com/ForumApp/forum-service/internal/pagination"
	"github.com/ForumApp/forum-service/internal/repository/postgres"
	"github.com/ForumApp/forum-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakePostService struct {
	create     func(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest, cover *multipart.FileHeader) (*model.Post, error)
	findByID   func(ctx context.Context, id int64) (*model.FullPost, error)
	list       func(ctx context.Context, authorID *uuid.UUID, page int, limit int) (*dto.GetPostsResponse, error)
	update     func(ctx context.Context, id int64, editorID uuid.UUID, input dto.EditPostRequest) (*model.Post, error)
	delete     func(ctx context.Context, id int64, editorID uuid.UUID) error
	bulkDelete func(ctx context.Context, ids []int64, editorID uuid.UUID) *dto.BulkDeleteResponse
}

func (f *fakePostService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest, cover *multipart.FileHeader) (*model.Post, error) {
	return f.create(ctx, authorID, input, cover)
}

func (f *fakePostService) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	return f.findByID(ctx, id)
}

func (f *fakePostService) List(ctx context.Context, authorID *uuid.UUID, page int, limit int) (*dto.GetPostsResponse, error) {
	return f.list(ctx, authorID, page, limit)
}

func (f *fakePostService) Update(ctx context.Context, id int64, editorID uuid.UUID, input dto.EditPostRequest) (*model.Post, error) {
	return f.update(ctx, id, editorID, input)
}

func (f *fakePostService) Delete(ctx context.Context, id int64, editorID uuid.UUID) error {
	return f.delete(ctx, id, editorID)
}

func (f *fakePostService) BulkDelete(ctx context.Context, ids []int64, editorID uuid.UUID) *dto.BulkDeleteResponse {
	return f.bulkDelete(ctx, ids, editorID)
}

type fakeCommentService struct {
	create func(ctx context.Context, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.FullComment, error)
	list   func(ctx context.Context, filter postgres.CommentFilter, page int, limit int) (*dto.GetCommentsResponse, error)
	update func(ctx context.Context, id int64, editorID uuid.UUID, content string) (*model.Comment, error)
	delete func(ctx context.Context, id int64, editorID uuid.UUID) error
}

func (f *fakeCommentService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.FullComment, error) {
	return f.create(ctx, authorID, input)
}

func (f *fakeCommentService) List(ctx context.Context, filter postgres.CommentFilter, page int, limit int) (*dto.GetCommentsResponse, error) {
	return f.list(ctx, filter, page, limit)
}

func (f *fakeCommentService) Update(ctx context.Context, id int64, editorID uuid.UUID, content string) (*model.Comment, error) {
	return f.update(ctx, id, editorID, content)
}

func (f *fakeCommentService) Delete(ctx context.Context, id int64, editorID uuid.UUID) error {
	return f.delete(ctx, id, editorID)
}

type fakeLikeService struct {
	like    func(ctx context.Context, postID int64, userID uuid.UUID) (*model.Like, error)
	unlike  func(ctx context.Context, postID int64, userID uuid.UUID) error
	isLiked func(ctx context.Context, postID int64, userID uuid.UUID) bool
}

func (f *fakeLikeService) Like(ctx context.Context, postID int64, userID uuid.UUID) (*model.Like, error) {
	return f.like(ctx, postID, userID)
}

func (f *fakeLikeService) Unlike(ctx context.Context, postID int64, userID uuid.UUID) error {
	return f.unlike(ctx, postID, userID)
}

func (f *fakeLikeService) IsLiked(ctx context.Context, postID int64, userID uuid.UUID) bool {
	return f.isLiked(ctx, postID, userID)
}

type fakeUserCacheService struct{}

func (f *fakeUserCacheService) CreateOrGet(_ context.Context, id uuid.UUID, _ string) (*model.CachedUser, error) {
	return &model.CachedUser{ID: id, Name: "tester"}, nil
}

func (f *fakeUserCacheService) FindByID(_ context.Context, id uuid.UUID) (*model.CachedUser, error) {
	return &model.CachedUser{ID: id, Name: "tester"}, nil
}

func newTestRouter(t *testing.T, services *service.Service) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	viper.Set("client.origin", "http://localhost:3000")
	t.Setenv("ACCESS_SECRET", testSecret)

	if services.UserCache == nil {
		services.UserCache = &fakeUserCacheService{}
	}

	return New(services).InitRoutes()
}

func accessTokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": userID.String(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return token
}

func doJSON(t *testing.T, router *gin.Engine, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestPostsListEnvelope(t *testing.T) {
	router := newTestRouter(t, &service.Service{
		Post: &fakePostService{
			list: func(_ context.Context, authorID *uuid.UUID, page int, limit int) (*dto.GetPostsResponse, error) {
				assert.Nil(t, authorID)
				assert.Equal(t, 2, page)
				assert.Equal(t, 10, limit)

				return &dto.GetPostsResponse{
					Posts:      []*model.PostCard{{ID: 11, Title: "t"}},
					Pagination: pagination.New(25, page, limit),
				}, nil
			},
		},
	})

	w := doJSON(t, router, http.MethodGet, "/api/v1/posts?page=2&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.GetPostsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, pagination.Info{Total: 25, Pages: 3, Current: 2}, resp.Pagination)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, int64(11), resp.Posts[0].ID)
}

func TestPostsListBadAuthorID(t *testing.T) {
	router := newTestRouter(t, &service.Service{Post: &fakePostService{}})

	w := doJSON(t, router, http.MethodGet, "/api/v1/posts?authorId=not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostsGetByIDNotFound(t *testing.T) {
	router := newTestRouter(t, &service.Service{
		Post: &fakePostService{
			findByID: func(_ context.Context, id int64) (*model.FullPost, error) {
				return nil, service.ErrPostNotFound
			},
		},
	})

	w := doJSON(t, router, http.MethodGet, "/api/v1/posts/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostsGetByIDInvalidID(t *testing.T) {
	router := newTestRouter(t, &service.Service{Post: &fakePostService{}})

	w := doJSON(t, router, http.MethodGet, "/api/v1/posts/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostsCreateRequiresAuth(t *testing.T) {
	router := newTestRouter(t, &service.Service{Post: &fakePostService{}})

	w := doJSON(t, router, http.MethodPost, "/api/v1/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostsCreateRejectsBadToken(t *testing.T) {
	router := newTestRouter(t, &service.Service{Post: &fakePostService{}})

	w := doJSON(t, router, http.MethodPost, "/api/v1/posts", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostsUpdateForbiddenForNonAuthor(t *testing.T) {
	editorID := uuid.New()
	router := newTestRouter(t, &service.Service{
		Post: &fakePostService{
			update: func(_ context.Context, id int64, gotEditorID uuid.UUID, _ dto.EditPostRequest) (*model.Post, error) {
				assert.Equal(t, int64(7), id)
				assert.Equal(t, editorID, gotEditorID)
				return nil, service.ErrForbidden
			},
		},
	})

	w := doJSON(t, router, http.MethodPatch, "/api/v1/posts/7", accessTokenFor(t, editorID),
		map[string]any{"title": "new title"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPostsDelete(t *testing.T) {
	userID := uuid.New()
	router := newTestRouter(t, &service.Service{
		Post: &fakePostService{
			delete: func(_ context.Context, id int64, editorID uuid.UUID) error {
				assert.Equal(t, int64(5), id)
				assert.Equal(t, userID, editorID)
				return nil
			},
		},
	})

	w := doJSON(t, router, http.MethodDelete, "/api/v1/posts/5", accessTokenFor(t, userID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPostsBulkDelete(t *testing.T) {
	userID := uuid.New()
	router := newTestRouter(t, &service.Service{
		Post: &fakePostService{
			bulkDelete: func(_ context.Context, ids []int64, editorID uuid.UUID) *dto.BulkDeleteResponse {
				assert.Equal(t, []int64{1, 2, 3}, ids)
				return &dto.BulkDeleteResponse{Deleted: []int64{1, 2}, Failed: []int64{3}}
			},
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/v1/posts/bulk-delete", accessTokenFor(t, userID),
		map[string]any{"ids": []int64{1, 2, 3}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.BulkDeleteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int64{1, 2}, resp.Deleted)
	assert.Equal(t, []int64{3}, resp.Failed)
}

func TestPostsBulkDeleteEmptyIDs(t *testing.T) {
	router := newTestRouter(t, &service.Service{Post: &fakePostService{}})

	w := doJSON(t, router, http.MethodPost, "/api/v1/posts/bulk-delete", accessTokenFor(t, uuid.New()),
		map[string]any{"ids": []int64{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostsCreateMultipart(t *testing.T) {
	userID := uuid.New()
	router := newTestRouter(t, &service.Service{
		Post: &fakePostService{
			create: func(_ context.Context, authorID uuid.UUID, input dto.CreatePostRequest, cover *multipart.FileHeader) (*model.Post, error) {
				assert.Equal(t, userID, authorID)
				assert.Equal(t, "hello", input.Title)
				assert.Nil(t, cover)
				return &model.Post{ID: 42, AuthorID: authorID, Title: input.Title}, nil
			},
		},
	})

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("title", "hello"))
	require.NoError(t, form.WriteField("content", `{"type":"document","content":[{"type":"paragraph","content":[{"type":"text","text":"hi"}]}]}`))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, userID))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.CreatePostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.Post.ID)
}

func TestCommentsCreate(t *testing.T) {
	userID := uuid.New()
	router := newTestRouter(t, &service.Service{
		Comment: &fakeCommentService{
			create: func(_ context.Context, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.FullComment, error) {
				assert.Equal(t, userID, authorID)
				assert.Equal(t, int64(1), input.PostID)
				return &model.FullComment{
					Comment: model.Comment{ID: 9, PostID: input.PostID, AuthorID: authorID, Content: input.Content},
				}, nil
			},
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/v1/comments", accessTokenFor(t, userID),
		map[string]any{"postId": 1, "content": "nice post"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.CreateCommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "nice post", resp.Comment.Comment.Content)
}

func TestCommentsCreateMissingContent(t *testing.T) {
	router := newTestRouter(t, &service.Service{Comment: &fakeCommentService{}})

	w := doJSON(t, router, http.MethodPost, "/api/v1/comments", accessTokenFor(t, uuid.New()),
		map[string]any{"postId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentsListByPost(t *testing.T) {
	router := newTestRouter(t, &service.Service{
		Comment: &fakeCommentService{
			list: func(_ context.Context, filter postgres.CommentFilter, page int, limit int) (*dto.GetCommentsResponse, error) {
				require.NotNil(t, filter.PostID)
				assert.Equal(t, int64(4), *filter.PostID)
				assert.Nil(t, filter.AuthorID)

				return &dto.GetCommentsResponse{
					Comments:   []*model.FullComment{},
					Pagination: pagination.New(0, page, limit),
				}, nil
			},
		},
	})

	w := doJSON(t, router, http.MethodGet, "/api/v1/comments?postId=4", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommentsDeleteNotFound(t *testing.T) {
	router := newTestRouter(t, &service.Service{
		Comment: &fakeCommentService{
			delete: func(_ context.Context, id int64, editorID uuid.UUID) error {
				return service.ErrCommentNotFound
			},
		},
	})

	w := doJSON(t, router, http.MethodDelete, "/api/v1/comments/123", accessTokenFor(t, uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikesCreate(t *testing.T) {
	userID := uuid.New()
	router := newTestRouter(t, &service.Service{
		Like: &fakeLikeService{
			like: func(_ context.Context, postID int64, gotUserID uuid.UUID) (*model.Like, error) {
				assert.Equal(t, int64(3), postID)
				assert.Equal(t, userID, gotUserID)
				return &model.Like{ID: 1, UserID: gotUserID, PostID: postID}, nil
			},
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/v1/likes/3", accessTokenFor(t, userID), nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLikesCreateDuplicate(t *testing.T) {
	router := newTestRouter(t, &service.Service{
		Like: &fakeLikeService{
			like: func(_ context.Context, postID int64, userID uuid.UUID) (*model.Like, error) {
				return nil, service.ErrAlreadyLiked
			},
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/v1/likes/3", accessTokenFor(t, uuid.New()), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikesCreateMissingPost(t *testing.T) {
	router := newTestRouter(t, &service.Service{
		Like: &fakeLikeService{
			like: func(_ context.Context, postID int64, userID uuid.UUID) (*model.Like, error) {
				return nil, service.ErrPostNotFound
			},
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/v1/likes/404", accessTokenFor(t, uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikesDeleteNotLiked(t *testing.T) {
	router := newTestRouter(t, &service.Service{
		Like: &fakeLikeService{
			unlike: func(_ context.Context, postID int64, userID uuid.UUID) error {
				return service.ErrLikeNotFound
			},
		},
	})

	w := doJSON(t, router, http.MethodDelete, "/api/v1/likes/3", accessTokenFor(t, uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikesCheckWithoutSession(t *testing.T) {
	router := newTestRouter(t, &service.Service{Like: &fakeLikeService{}})

	w := doJSON(t, router, http.MethodGet, "/api/v1/likes/check/3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.IsLikedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.IsLiked)
}

func TestLikesCheckLiked(t *testing.T) {
	userID := uuid.New()
	router := newTestRouter(t, &service.Service{
		Like: &fakeLikeService{
			isLiked: func(_ context.Context, postID int64, gotUserID uuid.UUID) bool {
				assert.Equal(t, int64(3), postID)
				assert.Equal(t, userID, gotUserID)
				return true
			},
		},
	})

	w := doJSON(t, router, http.MethodGet, "/api/v1/likes/check/3", accessTokenFor(t, userID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.IsLikedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsLiked)
}

func TestLikesCheckInvalidIDDegradesToFalse(t *testing.T) {
	router := newTestRouter(t, &service.Service{Like: &fakeLikeService{}})

	w := doJSON(t, router, http.MethodGet, "/api/v1/likes/check/abc", accessTokenFor(t, uuid.New()), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"isLiked":false`))
}
