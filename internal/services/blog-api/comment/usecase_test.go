package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NordCoder/Bloggerus/internal/domain/blog"
	"github.com/NordCoder/Bloggerus/internal/domain/comment"
	"github.com/NordCoder/Bloggerus/internal/repository/postgres"
)

type fakeCommentRepo struct {
	nextID int64
	rows   map[int64]*comment.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{rows: map[int64]*comment.Comment{}}
}

func (r *fakeCommentRepo) Create(_ context.Context, c *comment.Comment) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*comment.Comment, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) ListByBlog(_ context.Context, blogID int64) ([]*comment.Comment, error) {
	var out []*comment.Comment
	for _, c := range r.rows {
		if c.BlogID == blogID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *comment.Comment) error {
	if _, ok := r.rows[c.ID]; !ok {
		return postgres.ErrNotFound
	}
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type stubBlogRepo struct {
	blog.Repo
	existing map[int64]bool
}

func (r *stubBlogRepo) GetByID(_ context.Context, id int64) (*blog.Blog, error) {
	if !r.existing[id] {
		return nil, postgres.ErrNotFound
	}
	return &blog.Blog{ID: id}, nil
}

func newTestUsecase() (*Usecase, *stubBlogRepo) {
	blogs := &stubBlogRepo{existing: map[int64]bool{1: true}}
	return New(newFakeCommentRepo(), blogs), blogs
}

func TestCreate_RequiresBlog(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	c, err := uc.Create(ctx, 10, 1, "nice post")
	require.NoError(t, err)
	require.Equal(t, int64(10), c.UserID)
	require.Equal(t, int64(1), c.BlogID)

	_, err = uc.Create(ctx, 10, 99, "orphan")
	require.ErrorIs(t, err, ErrBlogNotFound)
}

func TestListByBlog_RequiresBlog(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	_, err := uc.Create(ctx, 10, 1, "first")
	require.NoError(t, err)
	_, err = uc.Create(ctx, 11, 1, "second")
	require.NoError(t, err)

	got, err := uc.ListByBlog(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)

	_, err = uc.ListByBlog(ctx, 99)
	require.ErrorIs(t, err, ErrBlogNotFound)
}

type failingBlogRepo struct {
	blog.Repo
	err error
}

func (r *failingBlogRepo) GetByID(context.Context, int64) (*blog.Blog, error) {
	return nil, r.err
}

// A blog-store outage must pass through as a fault, not collapse into a 404.
func TestCreateAndList_StoreFailurePassesThrough(t *testing.T) {
	boom := errors.New("connection refused")
	uc := New(newFakeCommentRepo(), &failingBlogRepo{err: boom})
	ctx := context.Background()

	_, err := uc.Create(ctx, 10, 1, "hi")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrBlogNotFound)

	_, err = uc.ListByBlog(ctx, 1)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrBlogNotFound)
}

func TestUpdate_AuthorOnly(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	c, err := uc.Create(ctx, 10, 1, "original")
	require.NoError(t, err)

	_, err = uc.Update(ctx, 11, c.ID, "hijacked")
	require.ErrorIs(t, err, ErrForbidden)

	got, err := uc.Update(ctx, 10, c.ID, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", got.Content)
}

func TestDelete_AuthorOnly(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	c, err := uc.Create(ctx, 10, 1, "to be removed")
	require.NoError(t, err)

	require.ErrorIs(t, uc.Delete(ctx, 11, c.ID), ErrForbidden)
	require.NoError(t, uc.Delete(ctx, 10, c.ID))
	require.ErrorIs(t, uc.Delete(ctx, 10, c.ID), postgres.ErrNotFound)
}
