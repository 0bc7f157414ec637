package book

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// fakeRepo is an in-memory Repository used across the package tests. It
// mirrors the store contract: ids assigned on create, newest-first
// listing with ties kept in insertion order.
type fakeRepo struct {
	seq   int
	books map[string]Book
	order map[string]int // insertion rank, for tie-breaking
	err   error          // when set, every call fails with it
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		books: make(map[string]Book),
		order: make(map[string]int),
	}
}

func (f *fakeRepo) Create(_ context.Context, b *Book) error {
	if f.err != nil {
		return f.err
	}
	f.seq++
	b.ID = fmt.Sprintf("book-%04d", f.seq)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	b.UpdatedAt = b.CreatedAt
	f.books[b.ID] = *b
	f.order[b.ID] = f.seq
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (Book, error) {
	if f.err != nil {
		return Book{}, f.err
	}
	b, ok := f.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) Update(_ context.Context, id string, updates map[string]any) (Book, error) {
	if f.err != nil {
		return Book{}, f.err
	}
	b, ok := f.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	for key, value := range updates {
		s, _ := value.(string)
		switch key {
		case "title":
			b.Title = s
		case "author":
			b.Author = s
		case "genre":
			b.Genre = s
		case "description":
			b.Description = s
		case "thumbnail":
			b.Thumbnail = s
		case "rating":
			b.Rating = s
		case "year":
			b.Year = s
		case "short_description":
			b.ShortDescription = s
		}
	}
	b.UpdatedAt = time.Now()
	f.books[id] = b
	return b, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.books[id]; !ok {
		return ErrNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]Book, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var owned []Book
	for _, b := range f.books {
		if b.OwnerID == ownerID {
			owned = append(owned, b)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return f.order[owned[i].ID] < f.order[owned[j].ID]
	})

	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}
