package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/ForumApp/forum-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.FullComment, error) {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(post_id, author_id, content, created_at, updated_at) VALUES($1, $2, $3, $4, $5) RETURNING id",
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.ID); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, comment.ID)
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.FullComment, error) {
	var comment model.FullComment
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		c.id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at, u.name, u.image
		FROM comments c
		JOIN cached_users u ON c.author_id = u.id
		WHERE c.id = $1`,
		id,
	).Scan(
		&comment.Comment.ID,
		&comment.Comment.PostID,
		&comment.Comment.AuthorID,
		&comment.Comment.Content,
		&comment.Comment.CreatedAt,
		&comment.Comment.UpdatedAt,
		&comment.Author.Name,
		&comment.Author.Image,
	); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) List(ctx context.Context, filter CommentFilter, limit int, offset int) ([]*model.FullComment, error) {
	query := `SELECT
	c.id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at, u.name, u.image
	FROM comments c
	JOIN cached_users u ON c.author_id = u.id`

	where, args := commentWhere(filter)
	query += where

	args = append(args, limit)
	query += " ORDER BY c.created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.FullComment
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.Comment.ID,
			&comment.Comment.PostID,
			&comment.Comment.AuthorID,
			&comment.Comment.Content,
			&comment.Comment.CreatedAt,
			&comment.Comment.UpdatedAt,
			&comment.Author.Name,
			&comment.Author.Image,
		); err != nil {
			return nil, err
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) Count(ctx context.Context, filter CommentFilter) (int64, error) {
	query := "SELECT COUNT(*) FROM comments c"
	where, args := commentWhere(filter)
	query += where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func commentWhere(filter CommentFilter) (string, []interface{}) {
	where := ""
	args := []interface{}{}

	if filter.PostID != nil {
		args = append(args, *filter.PostID)
		where += " WHERE c.post_id = $" + strconv.Itoa(len(args))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		if where == "" {
			where += " WHERE "
		} else {
			where += " AND "
		}
		where += "c.author_id = $" + strconv.Itoa(len(args))
	}

	return where, args
}

func (r *commentRepo) Update(ctx context.Context, id int64, content string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		`UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3
		RETURNING id, post_id, author_id, content, created_at, updated_at`,
		content,
		time.Now(),
		id,
	).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	return err
}
