package contact

import "context"

type Repo interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, id int64) (*Contact, error)
}
