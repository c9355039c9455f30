package category

import (
	"context"
	"errors"

	"github.com/NordCoder/Bloggerus/internal/domain/blog"
	"github.com/NordCoder/Bloggerus/internal/domain/category"
)

var ErrForbidden = errors.New("forbidden")

type Usecase struct {
	repo  category.Repo
	blogs blog.Repo
}

func New(repo category.Repo, blogs blog.Repo) *Usecase {
	return &Usecase{repo: repo, blogs: blogs}
}

func (u *Usecase) Create(ctx context.Context, ownerID int64, name string, description *string) (*category.Category, error) {
	c := &category.Category{Name: name, Description: description, UserID: ownerID}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Usecase) Get(ctx context.Context, id int64) (*category.Category, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *Usecase) List(ctx context.Context) ([]*category.Category, error) {
	return u.repo.List(ctx)
}

func (u *Usecase) Update(ctx context.Context, requesterID int64, upd *category.Category) (*category.Category, error) {
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
	return upd, nil
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

// Blogs lists the published blogs filed under a category. The category must
// exist; an unknown id is reported rather than returning an empty list.
func (u *Usecase) Blogs(ctx context.Context, categoryID int64) ([]*blog.WithCategory, error) {
	if _, err := u.repo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return u.blogs.ListByCategory(ctx, categoryID)
}
