package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/NordCoder/Bloggerus/internal/domain/user"
)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const qUserInsert = `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`

const qUserByID = `
SELECT id, username, email, password_hash, created_at, updated_at
FROM users WHERE id = $1`

const qUserByUsername = `
SELECT id, username, email, password_hash, created_at, updated_at
FROM users WHERE username = $1`

const qUserByEmail = `
SELECT id, username, email, password_hash, created_at, updated_at
FROM users WHERE email = $1`

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := r.db.q(ctx).QueryRow(ctx, qUserInsert, u.Username, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapPgError(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()
	return scanUser(r.db.q(ctx).QueryRow(ctx, qUserByID, id))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()
	return scanUser(r.db.q(ctx).QueryRow(ctx, qUserByUsername, username))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()
	return scanUser(r.db.q(ctx).QueryRow(ctx, qUserByEmail, email))
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &u, nil
}
