package comment

import (
	"context"
	"errors"

	"github.com/NordCoder/Bloggerus/internal/domain/blog"
	"github.com/NordCoder/Bloggerus/internal/domain/comment"
	"github.com/NordCoder/Bloggerus/internal/repository/postgres"
)

var (
	ErrForbidden    = errors.New("forbidden")
	ErrBlogNotFound = errors.New("blog not found")
)

type Usecase struct {
	repo  comment.Repo
	blogs blog.Repo
}

func New(repo comment.Repo, blogs blog.Repo) *Usecase {
	return &Usecase{repo: repo, blogs: blogs}
}

func (u *Usecase) Create(ctx context.Context, authorID, blogID int64, content string) (*comment.Comment, error) {
	if _, err := u.blogs.GetByID(ctx, blogID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	c := &comment.Comment{Content: content, UserID: authorID, BlogID: blogID}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Usecase) Get(ctx context.Context, id int64) (*comment.Comment, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *Usecase) ListByBlog(ctx context.Context, blogID int64) ([]*comment.Comment, error) {
	if _, err := u.blogs.GetByID(ctx, blogID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return u.repo.ListByBlog(ctx, blogID)
}

func (u *Usecase) Update(ctx context.Context, requesterID, id int64, content string) (*comment.Comment, error) {
	cur, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.UserID != requesterID {
		return nil, ErrForbidden
	}
	cur.Content = content
	if err := u.repo.Update(ctx, cur); err != nil {
		return nil, err
	}
	return u.repo.GetByID(ctx, id)
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
