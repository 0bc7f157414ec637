package book

import (
	"context"
)

// Repository defines the contract for book storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (Book, error)
	// Update applies the given column/value pairs and returns the
	// updated record. Callers are responsible for access checks.
	Update(ctx context.Context, id string, updates map[string]any) (Book, error)
	Delete(ctx context.Context, id string) error
	// ListByOwner returns one page of the owner's books, newest first,
	// plus the owner's total record count.
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Book, int, error)
}
