package book

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a book does not exist.
	ErrNotFound = errors.New("book not found")
	// ErrForbidden is returned when the caller is not the record owner.
	ErrForbidden = errors.New("not authorized")
)

// Book is a record in a user's collection. OwnerID is set once at
// creation and never changed by updates. Rating and Year are free-form
// strings on the wire and are stored as given.
type Book struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"user"`
	Title            string    `json:"title"`
	Author           string    `json:"author"`
	Genre            string    `json:"genre"`
	Description      string    `json:"description"`
	Thumbnail        string    `json:"thumbnail"`
	Rating           string    `json:"rating"`
	Year             string    `json:"year"`
	ShortDescription string    `json:"shortDescription"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateParams holds the caller-supplied fields for a new book. Only
// Title is required.
type CreateParams struct {
	Title            string
	Author           string
	Genre            string
	Description      string
	Thumbnail        string
	Rating           string
	Year             string
	ShortDescription string
}

// UpdateParams is a partial update: nil fields are left untouched.
// Ownership is deliberately absent, an update can never move a book to
// another user.
type UpdateParams struct {
	Title            *string
	Author           *string
	Genre            *string
	Description      *string
	Thumbnail        *string
	Rating           *string
	Year             *string
	ShortDescription *string
}

// Page is one page of a caller's collection plus the pagination summary.
type Page struct {
	Books       []Book `json:"books"`
	Total       int    `json:"total"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}
