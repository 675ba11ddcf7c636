package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/bookden/bookden/pkg/api"
	"github.com/bookden/bookden/pkg/auth"
	"github.com/bookden/bookden/pkg/observability"
	"github.com/bookden/bookden/pkg/storage"
	"github.com/bookden/bookden/pkg/transport"
)

// handleCreateBook handles POST /books. The cover image arrives as a
// base64 data URI and is uploaded to object storage before the book is
// persisted; only the durable URL is stored.
func (a *Adapter) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		transport.WriteAPIError(w, api.NewUnauthenticatedError("authentication required"))
		return
	}

	var req api.CreateBookRequest
	if !a.decodeJSONBody(w, r, &req) {
		return
	}

	if apiErr := req.Validate(); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	if a.images == nil {
		transport.WriteErrorResponse(w,
			api.NewValidationError("", "image storage is not configured"),
			http.StatusNotImplemented,
		)
		return
	}

	uploadCtx, cancel := context.WithTimeout(r.Context(), a.config.UploadTimeout)
	defer cancel()

	imageURL, err := a.images.Upload(uploadCtx, req.Image)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			transport.WriteAPIError(w, apiErr)
			return
		}
		a.writeStoreError(w, r, "upload_image", err)
		return
	}
	observability.RecordImageUpload()

	book := &api.Book{
		ID:      api.NewBookID(),
		Title:   req.Title,
		Caption: req.Caption,
		Rating:  req.Rating,
		Image:   imageURL,
		UserID:  principal.UserID,
	}

	if err := a.books.CreateBook(r.Context(), book); err != nil {
		a.writeStoreError(w, r, "create_book", err)
		return
	}

	transport.WriteJSON(w, http.StatusCreated, book)
}

// handleListBooks handles GET /books: the shared feed, newest first,
// paginated, each book joined with its owner's public profile.
//
// Malformed page or limit values fall back to the defaults instead of
// erroring; total pages come from an independent count so the last
// short page still reports the right total.
func (a *Adapter) handleListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := api.ParsePage(q.Get("page"))
	limit := api.ParseLimit(q.Get("limit"))

	total, err := a.books.CountBooks(r.Context())
	if err != nil {
		a.writeStoreError(w, r, "count_books", err)
		return
	}

	books, err := a.books.ListBooks(r.Context(), api.Offset(page, limit), limit)
	if err != nil {
		a.writeStoreError(w, r, "list_books", err)
		return
	}
	if books == nil {
		books = []api.ListedBook{}
	}

	transport.WriteJSON(w, http.StatusOK, api.BookPage{
		Books:       books,
		CurrentPage: page,
		TotalPages:  api.TotalPages(total, limit),
	})
}

// handleListOwnBooks handles GET /books/user: every book belonging to
// the authenticated user, newest first, without pagination.
func (a *Adapter) handleListOwnBooks(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		transport.WriteAPIError(w, api.NewUnauthenticatedError("authentication required"))
		return
	}

	books, err := a.books.ListBooksByOwner(r.Context(), principal.UserID)
	if err != nil {
		a.writeStoreError(w, r, "list_books_by_owner", err)
		return
	}
	if books == nil {
		books = []api.Book{}
	}

	transport.WriteJSON(w, http.StatusOK, books)
}

// handleDeleteBook handles DELETE /books/{id}.
//
// Existence is checked before ownership: a missing book is 404 for
// everyone, and only an existing book owned by someone else is 403.
// The stored cover image is removed best-effort; a failed image delete
// is logged and never blocks the record deletion.
func (a *Adapter) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		transport.WriteAPIError(w, api.NewUnauthenticatedError("authentication required"))
		return
	}

	id := r.PathValue("id")
	if !api.ValidateBookID(id) {
		transport.WriteAPIError(w, api.NewNotFoundError("book not found"))
		return
	}

	book, err := a.books.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("book not found"))
			return
		}
		a.writeStoreError(w, r, "get_book", err)
		return
	}

	if err := auth.RequireOwner(principal, book.UserID); err != nil {
		transport.WriteAPIError(w, api.NewForbiddenError("not the owner of this book"))
		return
	}

	if a.images != nil && book.Image != "" && a.images.Owns(book.Image) {
		if err := a.images.Delete(r.Context(), book.Image); err != nil {
			a.logger.Warn("deleting cover image failed",
				"book_id", book.ID,
				"image", book.Image,
				"error", err,
			)
		}
	}

	if err := a.books.DeleteBook(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("book not found"))
			return
		}
		a.writeStoreError(w, r, "delete_book", err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.Confirmation{Message: "book deleted"})
}
