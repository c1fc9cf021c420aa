package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/ForumApp/forum-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type likeRepo struct {
	db *pgxpool.Pool
}

func newLikeRepo(db *pgxpool.Pool) Like {
	return &likeRepo{
		db: db,
	}
}

// Create inserts atomically against the (user_id, post_id) uniqueness
// constraint; a concurrent duplicate loses the insert instead of racing a
// prior existence check.
func (r *likeRepo) Create(ctx context.Context, userID uuid.UUID, postID int64) (*model.Like, error) {
	like := model.Like{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}

	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO likes(user_id, post_id, created_at) VALUES($1, $2, $3) ON CONFLICT (user_id, post_id) DO NOTHING RETURNING id",
		like.UserID,
		like.PostID,
		like.CreatedAt,
	).Scan(&like.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	return &like, nil
}

func (r *likeRepo) Delete(ctx context.Context, userID uuid.UUID, postID int64) (bool, error) {
	ct, err := r.db.Exec(ctx, "DELETE FROM likes WHERE user_id = $1 AND post_id = $2", userID, postID)
	if err != nil {
		return false, err
	}

	return ct.RowsAffected() > 0, nil
}

func (r *likeRepo) Exists(ctx context.Context, userID uuid.UUID, postID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM likes l WHERE l.user_id = $1 AND l.post_id = $2)",
		userID,
		postID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
