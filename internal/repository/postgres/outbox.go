package postgres

import (
	"context"
	"time"

	"github.com/NordCoder/Bloggerus/internal/domain/outbox"
)

type OutboxRepo struct {
	db *DB
}

func NewOutboxRepo(db *DB) *OutboxRepo { return &OutboxRepo{db: db} }

const qOutboxEnqueue = `
INSERT INTO outbox (idempotency_key, kind, data, status)
VALUES ($1, $2, $3, 'CREATED')
ON CONFLICT (idempotency_key) DO NOTHING`

const qOutboxPick = `
WITH picked AS (
    SELECT idempotency_key
    FROM outbox
    WHERE status = 'CREATED'
       OR (status = 'IN_PROGRESS' AND updated_at < now() - $2::interval)
    ORDER BY created_at
    LIMIT $1
    FOR UPDATE SKIP LOCKED
)
UPDATE outbox o
SET status = 'IN_PROGRESS', updated_at = now()
FROM picked p
WHERE o.idempotency_key = p.idempotency_key
RETURNING o.idempotency_key, o.kind, o.data, o.status, o.created_at, o.updated_at`

const qOutboxMarkSuccess = `
UPDATE outbox
SET status = 'SUCCESS', updated_at = now()
WHERE idempotency_key = ANY($1)`

func (r *OutboxRepo) Enqueue(ctx context.Context, key string, kind outbox.Kind, data []byte) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	_, err := r.db.q(ctx).Exec(ctx, qOutboxEnqueue, key, int(kind), data)
	return mapPgError(err)
}

func (r *OutboxRepo) PickBatch(ctx context.Context, batch int, inProgressTTL time.Duration) ([]outbox.Message, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.q(ctx).Query(ctx, qOutboxPick, batch, inProgressTTL.String())
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []outbox.Message
	for rows.Next() {
		var m outbox.Message
		var kind int
		if err := rows.Scan(&m.IdempotencyKey, &kind, &m.Data, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, mapPgError(err)
		}
		m.Kind = outbox.Kind(kind)
		out = append(out, m)
	}
	return out, mapPgError(rows.Err())
}

func (r *OutboxRepo) MarkSuccess(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	_, err := r.db.q(ctx).Exec(ctx, qOutboxMarkSuccess, keys)
	return mapPgError(err)
}
