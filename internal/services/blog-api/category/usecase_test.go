package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NordCoder/Bloggerus/internal/domain/blog"
	"github.com/NordCoder/Bloggerus/internal/domain/category"
	"github.com/NordCoder/Bloggerus/internal/repository/postgres"
)

type fakeCategoryRepo struct {
	nextID int64
	rows   map[int64]*category.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{rows: map[int64]*category.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *category.Category) error {
	for _, ex := range r.rows {
		if ex.Name == c.Name {
			return postgres.ErrConflict
		}
	}
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*category.Category, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range r.rows {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *category.Category) error {
	if _, ok := r.rows[c.ID]; !ok {
		return postgres.ErrNotFound
	}
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type stubBlogRepo struct {
	blog.Repo
	byCategory map[int64][]*blog.WithCategory
}

func (r *stubBlogRepo) ListByCategory(_ context.Context, categoryID int64) ([]*blog.WithCategory, error) {
	return r.byCategory[categoryID], nil
}

func TestCreateAndGet(t *testing.T) {
	uc := New(newFakeCategoryRepo(), &stubBlogRepo{})
	ctx := context.Background()

	desc := "all things go"
	c, err := uc.Create(ctx, 1, "golang", &desc)
	require.NoError(t, err)
	require.NotZero(t, c.ID)
	require.Equal(t, int64(1), c.UserID)

	got, err := uc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "golang", got.Name)

	_, err = uc.Create(ctx, 2, "golang", nil)
	require.ErrorIs(t, err, postgres.ErrConflict)
}

func TestUpdate_OwnerGated(t *testing.T) {
	uc := New(newFakeCategoryRepo(), &stubBlogRepo{})
	ctx := context.Background()

	c, err := uc.Create(ctx, 1, "golang", nil)
	require.NoError(t, err)

	_, err = uc.Update(ctx, 2, &category.Category{ID: c.ID, Name: "rust"})
	require.ErrorIs(t, err, ErrForbidden)

	got, err := uc.Update(ctx, 1, &category.Category{ID: c.ID, Name: "rust"})
	require.NoError(t, err)
	require.Equal(t, "rust", got.Name)
	require.Equal(t, int64(1), got.UserID)
}

func TestDelete_OwnerGated(t *testing.T) {
	uc := New(newFakeCategoryRepo(), &stubBlogRepo{})
	ctx := context.Background()

	c, err := uc.Create(ctx, 1, "golang", nil)
	require.NoError(t, err)

	require.ErrorIs(t, uc.Delete(ctx, 2, c.ID), ErrForbidden)
	require.NoError(t, uc.Delete(ctx, 1, c.ID))
	require.ErrorIs(t, uc.Delete(ctx, 1, c.ID), postgres.ErrNotFound)
}

func TestBlogs_RequiresCategory(t *testing.T) {
	cats := newFakeCategoryRepo()
	blogs := &stubBlogRepo{byCategory: map[int64][]*blog.WithCategory{}}
	uc := New(cats, blogs)
	ctx := context.Background()

	_, err := uc.Blogs(ctx, 42)
	require.ErrorIs(t, err, postgres.ErrNotFound)

	c, err := uc.Create(ctx, 1, "golang", nil)
	require.NoError(t, err)
	blogs.byCategory[c.ID] = []*blog.WithCategory{
		{Blog: blog.Blog{ID: 7, Title: "post"}, CategoryName: "golang"},
	}

	got, err := uc.Blogs(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "golang", got[0].CategoryName)
}
