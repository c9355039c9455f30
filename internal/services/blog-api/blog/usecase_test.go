package blog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NordCoder/Bloggerus/internal/domain/blog"
	"github.com/NordCoder/Bloggerus/internal/repository/postgres"
)

type fakeBlogRepo struct {
	nextID int64
	rows   map[int64]*blog.Blog

	lastLimit  int
	lastOffset int
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{rows: map[int64]*blog.Blog{}}
}

func (r *fakeBlogRepo) Create(_ context.Context, b *blog.Blog) error {
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) GetByID(_ context.Context, id int64) (*blog.Blog, error) {
	b, ok := r.rows[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBlogRepo) ListByUser(_ context.Context, userID int64) ([]*blog.Blog, error) {
	var out []*blog.Blog
	for _, b := range r.rows {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) ListPublished(_ context.Context, limit, offset int) ([]*blog.Blog, error) {
	r.lastLimit, r.lastOffset = limit, offset
	var out []*blog.Blog
	for _, b := range r.rows {
		if b.IsPublished {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) ListByCategory(_ context.Context, categoryID int64) ([]*blog.WithCategory, error) {
	var out []*blog.WithCategory
	for _, b := range r.rows {
		if b.CategoryID != nil && *b.CategoryID == categoryID && b.IsPublished {
			out = append(out, &blog.WithCategory{Blog: *b})
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) Search(_ context.Context, terms []string) ([]*blog.Blog, error) {
	var out []*blog.Blog
	for _, b := range r.rows {
		if !b.IsPublished {
			continue
		}
		ok := true
		for _, t := range terms {
			hay := strings.ToLower(b.Title + " " + b.Content)
			if !strings.Contains(hay, strings.ToLower(t)) {
				ok = false
				break
			}
		}
		if ok {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) Update(_ context.Context, b *blog.Blog) error {
	if _, ok := r.rows[b.ID]; !ok {
		return postgres.ErrNotFound
	}
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *fakeBlogRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func seedBlog(t *testing.T, repo *fakeBlogRepo, uc *Usecase, ownerID int64, published bool) *blog.Blog {
	t.Helper()
	b, err := uc.Create(context.Background(), ownerID, &blog.Blog{
		Title: "hello world", Content: "first post", IsPublished: published,
	})
	require.NoError(t, err)
	return b
}

func TestGet_OwnerOnly(t *testing.T) {
	repo := newFakeBlogRepo()
	uc := New(repo)
	ctx := context.Background()

	b := seedBlog(t, repo, uc, 1, true)

	got, err := uc.Get(ctx, 1, b.ID)
	require.NoError(t, err)
	require.Equal(t, b.ID, got.ID)

	_, err = uc.Get(ctx, 2, b.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = uc.Get(ctx, 1, 999)
	require.ErrorIs(t, err, postgres.ErrNotFound)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	repo := newFakeBlogRepo()
	uc := New(repo)
	ctx := context.Background()

	b := seedBlog(t, repo, uc, 1, false)

	upd := &blog.Blog{ID: b.ID, Title: "new title", Content: "new content", IsPublished: true}
	got, err := uc.Update(ctx, 1, upd)
	require.NoError(t, err)
	require.Equal(t, "new title", got.Title)
	require.True(t, got.IsPublished)
	require.Equal(t, int64(1), got.UserID)

	_, err = uc.Update(ctx, 2, &blog.Blog{ID: b.ID, Title: "x", Content: "y"})
	require.ErrorIs(t, err, ErrForbidden)
}

// The ownership check cannot be bypassed by claiming someone else's user id
// in the payload; the requester always becomes the stored owner.
func TestUpdate_OwnerNotOverridable(t *testing.T) {
	repo := newFakeBlogRepo()
	uc := New(repo)
	ctx := context.Background()

	b := seedBlog(t, repo, uc, 1, true)

	got, err := uc.Update(ctx, 1, &blog.Blog{ID: b.ID, Title: "t", Content: "c", UserID: 42})
	require.NoError(t, err)
	require.Equal(t, int64(1), got.UserID)
}

func TestDelete_OwnerOnly(t *testing.T) {
	repo := newFakeBlogRepo()
	uc := New(repo)
	ctx := context.Background()

	b := seedBlog(t, repo, uc, 1, true)

	require.ErrorIs(t, uc.Delete(ctx, 2, b.ID), ErrForbidden)
	require.NoError(t, uc.Delete(ctx, 1, b.ID))
	require.ErrorIs(t, uc.Delete(ctx, 1, b.ID), postgres.ErrNotFound)
}

func TestListPublished_Paging(t *testing.T) {
	repo := newFakeBlogRepo()
	uc := New(repo)
	ctx := context.Background()

	_, err := uc.ListPublished(ctx, 0, -5)
	require.NoError(t, err)
	require.Equal(t, defaultPageSize, repo.lastLimit)
	require.Equal(t, 0, repo.lastOffset)

	_, err = uc.ListPublished(ctx, 1000, 20)
	require.NoError(t, err)
	require.Equal(t, maxPageSize, repo.lastLimit)
	require.Equal(t, 20, repo.lastOffset)
}

func TestSearch(t *testing.T) {
	repo := newFakeBlogRepo()
	uc := New(repo)
	ctx := context.Background()

	seedBlog(t, repo, uc, 1, true) // "hello world" / "first post"
	_, err := uc.Create(ctx, 1, &blog.Blog{Title: "go tips", Content: "hello gophers", IsPublished: true})
	require.NoError(t, err)
	_, err = uc.Create(ctx, 1, &blog.Blog{Title: "draft hello", Content: "hidden", IsPublished: false})
	require.NoError(t, err)

	got, err := uc.Search(ctx, "hello")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = uc.Search(ctx, "hello world")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = uc.Search(ctx, "nothing matches this")
	require.NoError(t, err)
	require.Empty(t, got)
}
