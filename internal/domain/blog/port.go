package blog

import "context"

type Repo interface {
	Create(ctx context.Context, b *Blog) error
	GetByID(ctx context.Context, id int64) (*Blog, error)
	ListByUser(ctx context.Context, userID int64) ([]*Blog, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*Blog, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*WithCategory, error)
	Search(ctx context.Context, terms []string) ([]*Blog, error)
	Update(ctx context.Context, b *Blog) error
	Delete(ctx context.Context, id int64) error
}
