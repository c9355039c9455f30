package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/NordCoder/Bloggerus/internal/domain/category"
)

type CategoryRepo struct {
	db *DB
}

func NewCategoryRepo(db *DB) *CategoryRepo { return &CategoryRepo{db: db} }

const qCategoryInsert = `
INSERT INTO categories (name, description, user_id)
VALUES ($1, $2, $3)
RETURNING id`

const qCategoryByID = `
SELECT id, name, description, user_id
FROM categories WHERE id = $1`

const qCategoryList = `
SELECT id, name, description, user_id
FROM categories ORDER BY name`

const qCategoryUpdate = `
UPDATE categories SET name = $2, description = $3
WHERE id = $1`

const qCategoryDelete = `DELETE FROM categories WHERE id = $1`

func (r *CategoryRepo) Create(ctx context.Context, c *category.Category) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := r.db.q(ctx).QueryRow(ctx, qCategoryInsert, c.Name, c.Description, c.UserID).
		Scan(&c.ID)
	return mapPgError(err)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()
	return scanCategory(r.db.q(ctx).QueryRow(ctx, qCategoryByID, id))
}

func (r *CategoryRepo) List(ctx context.Context) ([]*category.Category, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.q(ctx).Query(ctx, qCategoryList)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []*category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, mapPgError(rows.Err())
}

func (r *CategoryRepo) Update(ctx context.Context, c *category.Category) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.q(ctx).Exec(ctx, qCategoryUpdate, c.ID, c.Name, c.Description)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.q(ctx).Exec(ctx, qCategoryDelete, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.UserID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}
