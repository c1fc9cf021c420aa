package postgres

import (
	"context"

	"github.com/ForumApp/forum-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userCacheRepo struct {
	db *pgxpool.Pool
}

func newUserCacheRepo(db *pgxpool.Pool) UserCache {
	return &userCacheRepo{
		db: db,
	}
}

func (r *userCacheRepo) Create(ctx context.Context, cachedUser model.CachedUser) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO cached_users(id, name, image) VALUES($1, $2, $3) ON CONFLICT (id) DO UPDATE SET name = $2, image = $3",
		cachedUser.ID,
		cachedUser.Name,
		cachedUser.Image,
	)
	return err
}

func (r *userCacheRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	var user model.CachedUser
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.name, u.image FROM cached_users u WHERE u.id = $1",
		id,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Image,
	); err != nil {
		return nil, err
	}

	return &user, nil
}
