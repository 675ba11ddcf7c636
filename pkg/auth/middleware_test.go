package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookden/bookden/pkg/api"
	"github.com/bookden/bookden/pkg/storage"
)

type fakeResolver struct {
	users map[string]*api.User
	err   error
}

func (f *fakeResolver) GetUserByID(_ context.Context, id string) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func gatedHandler(t *testing.T, resolver *fakeResolver) (http.Handler, *TokenService, *Principal) {
	t.Helper()
	tokens := newTestTokenService(t)

	var seen Principal
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFromContext(r.Context())
		if p != nil {
			seen = *p
		}
		w.WriteHeader(http.StatusOK)
	})

	return Middleware(tokens, resolver)(inner), tokens, &seen
}

func TestMiddleware_MissingHeader(t *testing.T) {
	handler, _, _ := gatedHandler(t, &fakeResolver{})

	for _, header := range []string{"", "Bearer ", "Basic dXNlcjpwYXNz", "token abc"} {
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
		var resp api.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("header %q: decoding error body: %v", header, err)
		}
		if resp.Error.Type != api.ErrorTypeUnauthenticated {
			t.Errorf("header %q: error type = %q, want %q", header, resp.Error.Type, api.ErrorTypeUnauthenticated)
		}
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	handler, _, _ := gatedHandler(t, &fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMiddleware_DeletedUser(t *testing.T) {
	handler, tokens, _ := gatedHandler(t, &fakeResolver{users: map[string]*api.User{}})

	token, err := tokens.Issue("user_gone00000000000000000000")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for deleted account", rec.Code)
	}
}

func TestMiddleware_StoreError(t *testing.T) {
	handler, tokens, _ := gatedHandler(t, &fakeResolver{err: errors.New("connection refused")})

	token, err := tokens.Issue("user_aaaaaaaaaaaaaaaaaaaaaaaa")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for store failure", rec.Code)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	resolver := &fakeResolver{users: map[string]*api.User{
		"user_aaaaaaaaaaaaaaaaaaaaaaaa": {
			ID:           "user_aaaaaaaaaaaaaaaaaaaaaaaa",
			Username:     "reader",
			Email:        "reader@example.com",
			ProfileImage: "https://api.dicebear.com/9.x/thumbs/svg?seed=reader",
		},
	}}
	handler, tokens, seen := gatedHandler(t, resolver)

	token, err := tokens.Issue("user_aaaaaaaaaaaaaaaaaaaaaaaa")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.UserID != "user_aaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Errorf("principal user ID = %q, want the token's user", seen.UserID)
	}
	if seen.Username != "reader" {
		t.Errorf("principal username = %q, want %q", seen.Username, "reader")
	}
}
