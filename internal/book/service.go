package book

import (
	"context"
)

// Service implements the owner-scoped CRUD contract over a Repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new book owned by ownerID and returns it with the
// store-assigned id and timestamps.
func (s *Service) Create(ctx context.Context, ownerID string, p CreateParams) (Book, error) {
	b := &Book{
		OwnerID:          ownerID,
		Title:            p.Title,
		Author:           p.Author,
		Genre:            p.Genre,
		Description:      p.Description,
		Thumbnail:        p.Thumbnail,
		Rating:           p.Rating,
		Year:             p.Year,
		ShortDescription: p.ShortDescription,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Book{}, err
	}
	return *b, nil
}

// Get fetches a book by id. Any authenticated caller may fetch any book;
// only List and mutations are owner-scoped.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Update merges the supplied fields into the record. The record must
// exist and belong to callerID. Ownership itself is never part of the
// merge.
func (s *Service) Update(ctx context.Context, id, callerID string, p UpdateParams) (Book, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if current.OwnerID != callerID {
		return Book{}, ErrForbidden
	}

	updates := make(map[string]any)
	set := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	set("title", p.Title)
	set("author", p.Author)
	set("genre", p.Genre)
	set("description", p.Description)
	set("thumbnail", p.Thumbnail)
	set("rating", p.Rating)
	set("year", p.Year)
	set("short_description", p.ShortDescription)

	if len(updates) == 0 {
		return current, nil
	}

	return s.repo.Update(ctx, id, updates)
}

// Delete permanently removes the record. The record must exist and
// belong to callerID.
func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.OwnerID != callerID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// List returns the requested page of the caller's books, newest first,
// along with the caller's total count and the page count. An offset past
// the end yields an empty page, not an error.
func (s *Service) List(ctx context.Context, ownerID string, req PageRequest) (Page, error) {
	books, total, err := s.repo.ListByOwner(ctx, ownerID, req.Limit, req.Offset())
	if err != nil {
		return Page{}, err
	}
	if books == nil {
		books = []Book{}
	}
	return Page{
		Books:       books,
		Total:       total,
		CurrentPage: req.Page,
		TotalPages:  TotalPages(total, req.Limit),
	}, nil
}
