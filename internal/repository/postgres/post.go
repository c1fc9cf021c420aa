package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/ForumApp/forum-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, title, content, cover, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id",
		post.AuthorID,
		post.Title,
		post.Content,
		post.Cover,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	var post model.FullPost
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		p.id, p.author_id, p.title, p.content, p.cover, p.created_at, p.updated_at,
		u.name, u.image,
		(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
		FROM posts p
		JOIN cached_users u ON p.author_id = u.id
		WHERE p.id = $1`,
		id,
	).Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.Title,
		&post.Post.Content,
		&post.Post.Cover,
		&post.Post.CreatedAt,
		&post.Post.UpdatedAt,
		&post.Author.Name,
		&post.Author.Image,
		&post.Post.LikeCount,
		&post.Post.CommentCount,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) List(ctx context.Context, filter PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	query := `SELECT
	p.id, p.author_id, p.title, p.content, p.cover, p.created_at, p.updated_at,
	u.name, u.image
	FROM posts p
	JOIN cached_users u ON p.author_id = u.id`

	args := []interface{}{}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		query += " WHERE p.author_id = $" + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += " ORDER BY p.created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.FullPost
	for rows.Next() {
		var post model.FullPost
		if err := rows.Scan(
			&post.Post.ID,
			&post.Post.AuthorID,
			&post.Post.Title,
			&post.Post.Content,
			&post.Post.Cover,
			&post.Post.CreatedAt,
			&post.Post.UpdatedAt,
			&post.Author.Name,
			&post.Author.Image,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Count(ctx context.Context, filter PostFilter) (int64, error) {
	query := "SELECT COUNT(*) FROM posts p"
	args := []interface{}{}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		query += " WHERE p.author_id = $1"
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *postRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Post, error) {
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	allowedFields := []string{"title", "content", "cover"}
	allowedFieldsSet := make(map[string]struct{}, len(allowedFields))
	for _, field := range allowedFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			return nil, ErrFieldsNotAllowedToUpdate
		}
	}

	query := "UPDATE posts SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query += "updated_at = $" + strconv.Itoa(i)
	args = append(args, time.Now())
	i++

	query += " WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	query += " RETURNING id, author_id, title, content, cover, created_at, updated_at"

	var post model.Post
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.Cover,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

// Delete removes the post and everything it owns (comments, likes) in a
// single transaction.
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM comments WHERE post_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM likes WHERE post_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM posts WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
