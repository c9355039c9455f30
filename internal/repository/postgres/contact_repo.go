package postgres

import (
	"context"

	"github.com/NordCoder/Bloggerus/internal/domain/contact"
)

type ContactRepo struct {
	db *DB
}

func NewContactRepo(db *DB) *ContactRepo { return &ContactRepo{db: db} }

const qContactInsert = `
INSERT INTO contacts (name, email, subject, message)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

const qContactByID = `
SELECT id, name, email, subject, message, created_at
FROM contacts WHERE id = $1`

func (r *ContactRepo) Create(ctx context.Context, c *contact.Contact) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err := r.db.q(ctx).QueryRow(ctx, qContactInsert, c.Name, c.Email, c.Subject, c.Message).
		Scan(&c.ID, &c.CreatedAt)
	return mapPgError(err)
}

func (r *ContactRepo) GetByID(ctx context.Context, id int64) (*contact.Contact, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var c contact.Contact
	err := r.db.q(ctx).QueryRow(ctx, qContactByID, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}
