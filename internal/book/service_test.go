package book

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	t.Run("owner is the caller", func(t *testing.T) {
		created, err := service.Create(ctx, "user-a", CreateParams{Title: "Dune"})
		require.NoError(t, err)
		assert.Equal(t, "user-a", created.OwnerID)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("only title supplied persists without error", func(t *testing.T) {
		created, err := service.Create(ctx, "user-a", CreateParams{Title: "Bare"})
		require.NoError(t, err)
		assert.Empty(t, created.Author)
		assert.Empty(t, created.Genre)
		assert.Empty(t, created.Thumbnail)
		assert.Empty(t, created.Rating)
		assert.Empty(t, created.Year)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		broken := newFakeRepo()
		broken.err = errors.New("store down")
		_, err := NewService(broken).Create(ctx, "user-a", CreateParams{Title: "x"})
		assert.Error(t, err)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, Book) {
		repo := newFakeRepo()
		service := NewService(repo)
		created, err := service.Create(ctx, "user-a", CreateParams{Title: "Original", Author: "A. Writer", Genre: "Fiction"})
		require.NoError(t, err)
		return service, created
	}

	t.Run("merge keeps unsupplied fields", func(t *testing.T) {
		service, created := setup(t)
		updated, err := service.Update(ctx, created.ID, "user-a", UpdateParams{Title: strptr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "A. Writer", updated.Author)
		assert.Equal(t, "Fiction", updated.Genre)
	})

	t.Run("owner survives any update", func(t *testing.T) {
		service, created := setup(t)
		updated, err := service.Update(ctx, created.ID, "user-a", UpdateParams{
			Title:  strptr("Renamed"),
			Author: strptr("B. Novelist"),
		})
		require.NoError(t, err)
		assert.Equal(t, "user-a", updated.OwnerID)
	})

	t.Run("empty update returns current record", func(t *testing.T) {
		service, created := setup(t)
		updated, err := service.Update(ctx, created.ID, "user-a", UpdateParams{})
		require.NoError(t, err)
		assert.Equal(t, created, updated)
	})

	t.Run("nonexistent id is not found", func(t *testing.T) {
		service, _ := setup(t)
		_, err := service.Update(ctx, "missing", "user-a", UpdateParams{Title: strptr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-owner is forbidden, not not-found", func(t *testing.T) {
		service, created := setup(t)
		_, err := service.Update(ctx, created.ID, "user-b", UpdateParams{Title: strptr("x")})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	service := NewService(repo)

	created, err := service.Create(ctx, "user-a", CreateParams{Title: "B1"})
	require.NoError(t, err)

	t.Run("non-owner is forbidden and record survives", func(t *testing.T) {
		err := service.Delete(ctx, created.ID, "user-c")
		assert.ErrorIs(t, err, ErrForbidden)

		got, err := service.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("owner deletes permanently", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, created.ID, "user-a"))

		_, err := service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		err := service.Delete(ctx, "missing", "user-a")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Get_DoesNotCheckOwnership(t *testing.T) {
	ctx := context.Background()
	service := NewService(newFakeRepo())

	created, err := service.Create(ctx, "user-a", CreateParams{Title: "Shared"})
	require.NoError(t, err)

	// Get is id-only; any authenticated caller can fetch any book.
	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-a", got.OwnerID)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("scoped to owner, 12 books across 3 pages of 5", func(t *testing.T) {
		repo := newFakeRepo()
		service := NewService(repo)

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 12; i++ {
			b := &Book{OwnerID: "user-u", Title: fmt.Sprintf("U%02d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
			require.NoError(t, repo.Create(ctx, b))
		}
		// Another user's books must never leak into the listing.
		other := &Book{OwnerID: "user-v", Title: "V00", CreatedAt: base.Add(time.Hour)}
		require.NoError(t, repo.Create(ctx, other))

		page1, err := service.List(ctx, "user-u", PageRequest{Page: 1, Limit: 5})
		require.NoError(t, err)
		assert.Len(t, page1.Books, 5)
		assert.Equal(t, 12, page1.Total)
		assert.Equal(t, 1, page1.CurrentPage)
		assert.Equal(t, 3, page1.TotalPages)
		for _, b := range page1.Books {
			assert.Equal(t, "user-u", b.OwnerID)
		}

		page3, err := service.List(ctx, "user-u", PageRequest{Page: 3, Limit: 5})
		require.NoError(t, err)
		assert.Len(t, page3.Books, 2)
		assert.Equal(t, 3, page3.CurrentPage)
	})

	t.Run("newest first, ties in insertion order", func(t *testing.T) {
		repo := newFakeRepo()
		service := NewService(repo)

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		older := &Book{OwnerID: "user-u", Title: "older", CreatedAt: base}
		tieFirst := &Book{OwnerID: "user-u", Title: "tie-first", CreatedAt: base.Add(time.Minute)}
		tieSecond := &Book{OwnerID: "user-u", Title: "tie-second", CreatedAt: base.Add(time.Minute)}
		for _, b := range []*Book{older, tieFirst, tieSecond} {
			require.NoError(t, repo.Create(ctx, b))
		}

		page, err := service.List(ctx, "user-u", PageRequest{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Books, 3)
		assert.Equal(t, "tie-first", page.Books[0].Title)
		assert.Equal(t, "tie-second", page.Books[1].Title)
		assert.Equal(t, "older", page.Books[2].Title)
	})

	t.Run("empty collection", func(t *testing.T) {
		service := NewService(newFakeRepo())
		page, err := service.List(ctx, "user-u", PageRequest{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Books)
		assert.NotNil(t, page.Books)
		assert.Equal(t, 0, page.Total)
		assert.Equal(t, 0, page.TotalPages)
	})

	t.Run("offset past the end is an empty page, not an error", func(t *testing.T) {
		repo := newFakeRepo()
		service := NewService(repo)
		_, err := service.Create(ctx, "user-u", CreateParams{Title: "only"})
		require.NoError(t, err)

		page, err := service.List(ctx, "user-u", PageRequest{Page: 9, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Books)
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, 9, page.CurrentPage)
	})
}
