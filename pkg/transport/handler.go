package transport

import (
	"context"

	"github.com/bookden/bookden/pkg/api"
)

// UserStore persists user accounts.
//
// Email and username uniqueness is enforced by the store: CreateUser
// returns storage.ErrConflict when either is already taken, which makes
// the store the arbiter for concurrent registrations racing past the
// handler's pre-checks.
type UserStore interface {
	// CreateUser persists a new user record, including the password hash.
	CreateUser(ctx context.Context, user *api.User) error

	// GetUserByID returns the user with the given ID, with the password
	// hash excluded from the projection. Returns storage.ErrNotFound if
	// no such user exists.
	GetUserByID(ctx context.Context, id string) (*api.User, error)

	// GetUserByEmail returns the user with the given email, including
	// the password hash for credential verification. The lookup is
	// case-insensitive. Returns storage.ErrNotFound if no such user
	// exists.
	GetUserByEmail(ctx context.Context, email string) (*api.User, error)

	// GetUserByUsername returns the user with the given username, with
	// the password hash excluded. The lookup is case-insensitive.
	// Returns storage.ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*api.User, error)

	// HealthCheck verifies the store is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// BookStore persists book records.
type BookStore interface {
	// CreateBook persists a new book record.
	CreateBook(ctx context.Context, book *api.Book) error

	// GetBook returns the book with the given ID. Returns
	// storage.ErrNotFound if no such book exists.
	GetBook(ctx context.Context, id string) (*api.Book, error)

	// DeleteBook removes the book with the given ID. Returns
	// storage.ErrNotFound if no such book exists.
	DeleteBook(ctx context.Context, id string) error

	// ListBooks returns a page of books across all owners, newest first,
	// each joined with its owner's public profile.
	ListBooks(ctx context.Context, offset, limit int) ([]api.ListedBook, error)

	// CountBooks returns the total number of books across all owners.
	CountBooks(ctx context.Context) (int, error)

	// ListBooksByOwner returns all books belonging to one owner, newest
	// first, without pagination.
	ListBooksByOwner(ctx context.Context, ownerID string) ([]api.Book, error)
}

// ImageStore stores cover images and serves them by public URL.
//
// The adapter treats a nil ImageStore as "image storage not configured"
// and rejects book creation rather than persisting books without covers.
type ImageStore interface {
	// Upload decodes a base64 data URI and stores it, returning the
	// public URL of the stored object.
	Upload(ctx context.Context, dataURI string) (string, error)

	// Delete removes the object behind a previously returned URL.
	Delete(ctx context.Context, url string) error

	// Owns reports whether the URL points into this store. Deletion is
	// skipped for foreign URLs.
	Owns(url string) bool
}
