package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bookden/bookden/pkg/api"
	"github.com/bookden/bookden/pkg/auth"
	"github.com/bookden/bookden/pkg/transport"
)

// Adapter serves the book recommendation API over HTTP. It routes
// requests to the appropriate handler and serializes responses.
type Adapter struct {
	users  transport.UserStore
	books  transport.BookStore
	images transport.ImageStore // nil if image storage is not configured
	tokens *auth.TokenService
	mux    *http.ServeMux
	config Config
	logger *slog.Logger
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr        string
	MaxBodySize int64

	// UploadTimeout bounds a single cover-image upload to object
	// storage so a stalled upload cannot hold a request forever.
	UploadTimeout time.Duration
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		MaxBodySize:   10 << 20, // 10 MB, covers base64 image payloads
		UploadTimeout: 30 * time.Second,
	}
}

// NewAdapter creates an HTTP adapter over the given stores. The
// ImageStore is optional; when nil, book creation returns an error
// indicating image storage is not configured. The token service guards
// every /books route; /auth routes and /healthz stay open.
func NewAdapter(users transport.UserStore, books transport.BookStore, images transport.ImageStore, tokens *auth.TokenService, cfg Config, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}

	a := &Adapter{
		users:  users,
		books:  books,
		images: images,
		tokens: tokens,
		mux:    http.NewServeMux(),
		config: cfg,
		logger: logger,
	}

	a.mux.HandleFunc("POST /auth/register", a.handleRegister)
	a.mux.HandleFunc("POST /auth/login", a.handleLogin)

	gate := auth.Middleware(tokens, users)
	a.mux.Handle("POST /books", gate(http.HandlerFunc(a.handleCreateBook)))
	a.mux.Handle("GET /books", gate(http.HandlerFunc(a.handleListBooks)))
	a.mux.Handle("GET /books/user", gate(http.HandlerFunc(a.handleListOwnBooks)))
	a.mux.Handle("DELETE /books/{id}", gate(http.HandlerFunc(a.handleDeleteBook)))

	a.mux.HandleFunc("GET /healthz", a.handleHealthz)

	return a
}

// Handler returns the http.Handler for this adapter. Use this to
// integrate with an http.Server or test with httptest.
func (a *Adapter) Handler() http.Handler {
	return a.mux
}

// decodeJSONBody validates the Content-Type, bounds the body size, and
// decodes the JSON request body into dst. A false return means an error
// response has already been written.
func (a *Adapter) decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewValidationError("content_type", "Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewValidationError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return false
		}
		transport.WriteErrorResponse(w,
			api.NewValidationError("body", "invalid JSON: "+err.Error()),
			http.StatusBadRequest,
		)
		return false
	}

	return true
}

// writeStoreError maps a non-sentinel store failure to a generic server
// error, keeping the underlying detail in the logs only.
func (a *Adapter) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	a.logger.Error("storage operation failed",
		"op", op,
		"path", r.URL.Path,
		"error", err,
	)
	transport.WriteAPIError(w, api.NewServerError("internal server error"))
}

// handleHealthz reports liveness plus storage reachability.
func (a *Adapter) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := a.users.HealthCheck(r.Context()); err != nil {
		a.logger.Error("health check failed", "error", err)
		transport.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
