package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/NordCoder/Bloggerus/internal/domain/blog"
)

type BlogRepo struct {
	db *DB
}

func NewBlogRepo(db *DB) *BlogRepo { return &BlogRepo{db: db} }

const blogCols = `id, title, content, is_published, user_id, category_id, created_at, modified_at`

const qBlogInsert = `
INSERT INTO blogs (title, content, is_published, user_id, category_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, modified_at`

const qBlogByID = `
SELECT ` + blogCols + `
FROM blogs WHERE id = $1`

const qBlogByUser = `
SELECT ` + blogCols + `
FROM blogs WHERE user_id = $1
ORDER BY created_at DESC`

const qBlogPublished = `
SELECT ` + blogCols + `
FROM blogs WHERE is_published = TRUE
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

const qBlogByCategory = `
SELECT b.id, b.title, b.content, b.is_published, b.user_id, b.category_id,
       b.created_at, b.modified_at, c.name
FROM blogs b
JOIN categories c ON c.id = b.category_id
WHERE b.category_id = $1 AND b.is_published = TRUE
ORDER BY b.created_at DESC`

const qBlogUpdate = `
UPDATE blogs
SET title = $2, content = $3, is_published = $4, category_id = $5, modified_at = now()
WHERE id = $1`

const qBlogDelete = `DELETE FROM blogs WHERE id = $1`

func (r *BlogRepo) Create(ctx context.Context, b *blog.Blog) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := r.db.q(ctx).QueryRow(ctx, qBlogInsert,
		b.Title, b.Content, b.IsPublished, b.UserID, b.CategoryID).
		Scan(&b.ID, &b.CreatedAt, &b.ModifiedAt)
	return mapPgError(err)
}

func (r *BlogRepo) GetByID(ctx context.Context, id int64) (*blog.Blog, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()
	return scanBlog(r.db.q(ctx).QueryRow(ctx, qBlogByID, id))
}

func (r *BlogRepo) ListByUser(ctx context.Context, userID int64) ([]*blog.Blog, error) {
	return r.list(ctx, qBlogByUser, userID)
}

func (r *BlogRepo) ListPublished(ctx context.Context, limit, offset int) ([]*blog.Blog, error) {
	return r.list(ctx, qBlogPublished, limit, offset)
}

func (r *BlogRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*blog.WithCategory, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.q(ctx).Query(ctx, qBlogByCategory, categoryID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []*blog.WithCategory
	for rows.Next() {
		var b blog.WithCategory
		err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.IsPublished, &b.UserID,
			&b.CategoryID, &b.CreatedAt, &b.ModifiedAt, &b.CategoryName)
		if err != nil {
			return nil, mapPgError(err)
		}
		out = append(out, &b)
	}
	return out, mapPgError(rows.Err())
}

// Search matches published blogs whose title or content contains every
// term, case-insensitively.
func (r *BlogRepo) Search(ctx context.Context, terms []string) ([]*blog.Blog, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(`SELECT ` + blogCols + ` FROM blogs WHERE is_published = TRUE`)
	args := make([]any, 0, len(terms))
	for i, t := range terms {
		fmt.Fprintf(&sb, ` AND (title ILIKE $%d OR content ILIKE $%d)`, i+1, i+1)
		args = append(args, "%"+t+"%")
	}
	sb.WriteString(` ORDER BY created_at DESC`)

	rows, err := r.db.q(ctx).Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []*blog.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, mapPgError(rows.Err())
}

func (r *BlogRepo) Update(ctx context.Context, b *blog.Blog) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.q(ctx).Exec(ctx, qBlogUpdate,
		b.ID, b.Title, b.Content, b.IsPublished, b.CategoryID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BlogRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.q(ctx).Exec(ctx, qBlogDelete, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BlogRepo) list(ctx context.Context, sql string, args ...any) ([]*blog.Blog, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []*blog.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, mapPgError(rows.Err())
}

func scanBlog(row pgx.Row) (*blog.Blog, error) {
	var b blog.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.IsPublished, &b.UserID,
		&b.CategoryID, &b.CreatedAt, &b.ModifiedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &b, nil
}
