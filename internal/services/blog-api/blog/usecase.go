package blog

import (
	"context"
	"errors"
	"strings"

	"github.com/NordCoder/Bloggerus/internal/domain/blog"
)

var ErrForbidden = errors.New("forbidden")

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Usecase struct {
	repo blog.Repo
}

func New(repo blog.Repo) *Usecase {
	return &Usecase{repo: repo}
}

func (u *Usecase) Create(ctx context.Context, ownerID int64, b *blog.Blog) (*blog.Blog, error) {
	b.UserID = ownerID
	if err := u.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns a blog to its owner. Drafts and published posts alike are
// private through this endpoint; the public listing is ListPublished.
func (u *Usecase) Get(ctx context.Context, requesterID, id int64) (*blog.Blog, error) {
	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != requesterID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (u *Usecase) ListMine(ctx context.Context, requesterID int64) ([]*blog.Blog, error) {
	return u.repo.ListByUser(ctx, requesterID)
}

func (u *Usecase) Update(ctx context.Context, requesterID int64, upd *blog.Blog) (*blog.Blog, error) {
	cur, err := u.repo.GetByID(ctx, upd.ID)
	if err != nil {
		return nil, err
	}
	if cur.UserID != requesterID {
		return nil, ErrForbidden
	}
	upd.UserID = requesterID
	if err := u.repo.Update(ctx, upd); err != nil {
		return nil, err
	}
	return u.repo.GetByID(ctx, upd.ID)
}

func (u *Usecase) Delete(ctx context.Context, requesterID, id int64) error {
	cur, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cur.UserID != requesterID {
		return ErrForbidden
	}
	return u.repo.Delete(ctx, id)
}

func (u *Usecase) ListPublished(ctx context.Context, limit, offset int) ([]*blog.Blog, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return u.repo.ListPublished(ctx, limit, offset)
}

// Search splits the query on whitespace; every term must match title or
// content of a published blog.
func (u *Usecase) Search(ctx context.Context, query string) ([]*blog.Blog, error) {
	return u.repo.Search(ctx, strings.Fields(query))
}
