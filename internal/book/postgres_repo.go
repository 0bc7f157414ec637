package book

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const bookColumns = `id, owner_id, title, author, genre, description, thumbnail, rating, year, short_description, created_at, updated_at`

func scanBook(row pgx.Row, b *Book) error {
	return row.Scan(
		&b.ID, &b.OwnerID, &b.Title, &b.Author, &b.Genre, &b.Description,
		&b.Thumbnail, &b.Rating, &b.Year, &b.ShortDescription,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (id, owner_id, title, author, genre, description, thumbnail, rating, year, short_description)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + bookColumns + `
	`
	return scanBook(r.db.QueryRow(ctx, query,
		b.OwnerID, b.Title, b.Author, b.Genre, b.Description,
		b.Thumbnail, b.Rating, b.Year, b.ShortDescription,
	), b)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	const query = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE id = $1
	LIMIT 1
	`
	var b Book
	err := scanBook(r.db.QueryRow(ctx, query, id), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// updatableColumns is the whitelist for partial updates. owner_id is
// intentionally not here.
var updatableColumns = map[string]bool{
	"title":             true,
	"author":            true,
	"genre":             true,
	"description":       true,
	"thumbnail":         true,
	"rating":            true,
	"year":              true,
	"short_description": true,
}

func (r *PostgresRepo) Update(ctx context.Context, id string, updates map[string]any) (Book, error) {
	fields := []string{}
	args := []any{}
	argn := 1

	for key, value := range updates {
		if !updatableColumns[key] {
			continue
		}
		fields = append(fields, key+" = $"+strconv.Itoa(argn))
		args = append(args, value)
		argn++
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	fields = append(fields, "updated_at = now()")
	args = append(args, id)

	query := "UPDATE books SET " + strings.Join(fields, ", ") +
		" WHERE id = $" + strconv.Itoa(argn) +
		" RETURNING " + bookColumns

	var b Book
	err := scanBook(r.db.QueryRow(ctx, query, args...), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Book, int, error) {
	const query = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE owner_id = $1
	ORDER BY created_at DESC, seq
	LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := scanBook(rows, &b); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM books WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}
