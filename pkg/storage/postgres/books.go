package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bookden/bookden/pkg/api"
	"github.com/bookden/bookden/pkg/storage"
)

// CreateBook persists a new book record.
func (s *Store) CreateBook(ctx context.Context, book *api.Book) error {
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO books (id, title, caption, rating, image, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		book.ID, book.Title, book.Caption, book.Rating, book.Image, book.UserID, book.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting book: %w", err)
	}

	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*api.Book, error) {
	var book api.Book
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, caption, rating, image, user_id, created_at
		FROM books
		WHERE id = $1
	`, id).Scan(&book.ID, &book.Title, &book.Caption, &book.Rating, &book.Image, &book.UserID, &book.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying book: %w", err)
	}
	return &book, nil
}

// DeleteBook removes a book by ID.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListBooks returns a page of books across all owners, newest first,
// each joined with its owner's public profile. The created_at ordering
// is tie-broken by ID so pagination stays stable.
func (s *Store) ListBooks(ctx context.Context, offset, limit int) ([]api.ListedBook, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, b.title, b.caption, b.rating, b.image, b.user_id, b.created_at,
		       u.username, u.profile_image
		FROM books b
		JOIN users u ON u.id = b.user_id
		ORDER BY b.created_at DESC, b.id DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	books := make([]api.ListedBook, 0, limit)
	for rows.Next() {
		var listed api.ListedBook
		if err := rows.Scan(
			&listed.ID, &listed.Title, &listed.Caption, &listed.Rating,
			&listed.Image, &listed.UserID, &listed.CreatedAt,
			&listed.Owner.Username, &listed.Owner.ProfileImage,
		); err != nil {
			return nil, fmt.Errorf("scanning book row: %w", err)
		}
		books = append(books, listed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating book rows: %w", err)
	}

	return books, nil
}

// CountBooks returns the total number of books across all owners.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return count, nil
}

// ListBooksByOwner returns all books belonging to one owner, newest first.
func (s *Store) ListBooksByOwner(ctx context.Context, ownerID string) ([]api.Book, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, caption, rating, image, user_id, created_at
		FROM books
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying books by owner: %w", err)
	}
	defer rows.Close()

	books := make([]api.Book, 0)
	for rows.Next() {
		var book api.Book
		if err := rows.Scan(
			&book.ID, &book.Title, &book.Caption, &book.Rating,
			&book.Image, &book.UserID, &book.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating book rows: %w", err)
	}

	return books, nil
}
