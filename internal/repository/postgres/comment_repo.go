package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/NordCoder/Bloggerus/internal/domain/comment"
)

type CommentRepo struct {
	db *DB
}

func NewCommentRepo(db *DB) *CommentRepo { return &CommentRepo{db: db} }

const qCommentInsert = `
INSERT INTO comments (content, user_id, blog_id)
VALUES ($1, $2, $3)
RETURNING id, created_at, modified_at`

const qCommentByID = `
SELECT id, content, user_id, blog_id, created_at, modified_at
FROM comments WHERE id = $1`

const qCommentByBlog = `
SELECT id, content, user_id, blog_id, created_at, modified_at
FROM comments WHERE blog_id = $1
ORDER BY created_at`

const qCommentUpdate = `
UPDATE comments SET content = $2, modified_at = now()
WHERE id = $1`

const qCommentDelete = `DELETE FROM comments WHERE id = $1`

func (r *CommentRepo) Create(ctx context.Context, c *comment.Comment) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := r.db.q(ctx).QueryRow(ctx, qCommentInsert, c.Content, c.UserID, c.BlogID).
		Scan(&c.ID, &c.CreatedAt, &c.ModifiedAt)
	return mapPgError(err)
}

func (r *CommentRepo) GetByID(ctx context.Context, id int64) (*comment.Comment, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()
	return scanComment(r.db.q(ctx).QueryRow(ctx, qCommentByID, id))
}

func (r *CommentRepo) ListByBlog(ctx context.Context, blogID int64) ([]*comment.Comment, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.q(ctx).Query(ctx, qCommentByBlog, blogID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []*comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, mapPgError(rows.Err())
}

func (r *CommentRepo) Update(ctx context.Context, c *comment.Comment) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.q(ctx).Exec(ctx, qCommentUpdate, c.ID, c.Content)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.q(ctx).Exec(ctx, qCommentDelete, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanComment(row pgx.Row) (*comment.Comment, error) {
	var c comment.Comment
	err := row.Scan(&c.ID, &c.Content, &c.UserID, &c.BlogID, &c.CreatedAt, &c.ModifiedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}
