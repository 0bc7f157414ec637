package client

import (
	"context"

	"github.com/AP-Porag/book-management-app/internal/book"
)

// DefaultPageSize matches the UI's list size.
const DefaultPageSize = 5

// PageCache holds the one page of books currently displayed. Every
// successful mutation discards it and refetches the active page from the
// server, so the cached view always matches server state. There is no
// optimistic patching; a failed mutation leaves the cache as it was.
type PageCache struct {
	api   *Client
	page  int
	limit int

	books      []book.Book
	total      int
	totalPages int
}

func NewPageCache(api *Client, limit int) *PageCache {
	if limit < 1 {
		limit = DefaultPageSize
	}
	return &PageCache{api: api, page: 1, limit: limit}
}

func (p *PageCache) Books() []book.Book { return p.books }
func (p *PageCache) Total() int         { return p.total }
func (p *PageCache) TotalPages() int    { return p.totalPages }
func (p *PageCache) Page() int          { return p.page }

// Reload refetches the current page, replacing the cached slice.
func (p *PageCache) Reload(ctx context.Context) error {
	result, err := p.api.ListBooks(ctx, p.page, p.limit)
	if err != nil {
		return err
	}
	p.books = result.Books
	p.total = result.Total
	p.totalPages = result.TotalPages
	return nil
}

// SetPage switches the active page and loads it.
func (p *PageCache) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	p.page = page
	return p.Reload(ctx)
}

// Add creates a book and reloads the current page.
func (p *PageCache) Add(ctx context.Context, draft BookDraft) (book.Book, error) {
	created, err := p.api.CreateBook(ctx, draft)
	if err != nil {
		return book.Book{}, err
	}
	return created, p.Reload(ctx)
}

// Edit applies a partial update and reloads the current page.
func (p *PageCache) Edit(ctx context.Context, id string, fields map[string]any) (book.Book, error) {
	updated, err := p.api.UpdateBook(ctx, id, fields)
	if err != nil {
		return book.Book{}, err
	}
	return updated, p.Reload(ctx)
}

// Remove deletes a book and reloads the current page.
func (p *PageCache) Remove(ctx context.Context, id string) error {
	if err := p.api.DeleteBook(ctx, id); err != nil {
		return err
	}
	return p.Reload(ctx)
}
