// Package memory provides an in-memory storage implementation, used for
// development and tests. Data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bookden/bookden/pkg/api"
	"github.com/bookden/bookden/pkg/storage"
)

// Store is an in-memory implementation of the user and book stores.
// All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	users map[string]*api.User // keyed by ID
	books map[string]*api.Book // keyed by ID
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*api.User),
		books: make(map[string]*api.Book),
	}
}

// CreateUser persists a new user. Email and username uniqueness is
// case-insensitive; a collision returns storage.ErrConflict.
func (s *Store) CreateUser(_ context.Context, user *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) || strings.EqualFold(existing.Username, user.Username) {
			return storage.ErrConflict
		}
	}

	stored := *user
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.users[stored.ID] = &stored
	user.CreatedAt = stored.CreatedAt
	return nil
}

// GetUserByID returns the user with the given ID, password hash excluded.
func (s *Store) GetUserByID(_ context.Context, id string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyWithoutHash(user), nil
}

// GetUserByEmail returns the user with the given email, including the
// password hash for credential verification.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetUserByUsername returns the user with the given username, password
// hash excluded.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			return copyWithoutHash(user), nil
		}
	}
	return nil, storage.ErrNotFound
}

// CreateBook persists a new book record.
func (s *Store) CreateBook(_ context.Context, book *api.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *book
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.books[stored.ID] = &stored
	book.CreatedAt = stored.CreatedAt
	return nil
}

// GetBook returns the book with the given ID.
func (s *Store) GetBook(_ context.Context, id string) (*api.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *book
	return &copied, nil
}

// DeleteBook removes the book with the given ID.
func (s *Store) DeleteBook(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.books, id)
	return nil
}

// ListBooks returns a page of books across all owners, newest first,
// each joined with its owner's public profile.
func (s *Store) ListBooks(_ context.Context, offset, limit int) ([]api.ListedBook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sortedBooks()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []api.ListedBook{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	page := make([]api.ListedBook, 0, end-offset)
	for _, book := range all[offset:end] {
		listed := api.ListedBook{Book: *book}
		if owner, ok := s.users[book.UserID]; ok {
			listed.Owner = api.BookOwner{
				Username:     owner.Username,
				ProfileImage: owner.ProfileImage,
			}
		}
		page = append(page, listed)
	}
	return page, nil
}

// CountBooks returns the total number of books across all owners.
func (s *Store) CountBooks(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books), nil
}

// ListBooksByOwner returns all books belonging to one owner, newest first.
func (s *Store) ListBooksByOwner(_ context.Context, ownerID string) ([]api.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]api.Book, 0)
	for _, book := range s.sortedBooks() {
		if book.UserID == ownerID {
			books = append(books, *book)
		}
	}
	return books, nil
}

// HealthCheck always succeeds for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// sortedBooks returns all books newest first. Ties on CreatedAt are
// broken by ID so pagination stays stable. Callers must hold the lock.
func (s *Store) sortedBooks() []*api.Book {
	all := make([]*api.Book, 0, len(s.books))
	for _, book := range s.books {
		all = append(all, book)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return all
}

func copyWithoutHash(user *api.User) *api.User {
	copied := *user
	copied.PasswordHash = ""
	return &copied
}
