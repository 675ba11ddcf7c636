package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/bookden/bookden/pkg/api"
	"github.com/bookden/bookden/pkg/auth"
	"github.com/bookden/bookden/pkg/observability"
	"github.com/bookden/bookden/pkg/storage"
	"github.com/bookden/bookden/pkg/transport"
)

// avatarURL derives the generated profile image for a new account.
func avatarURL(username string) string {
	return "https://api.dicebear.com/9.x/thumbs/svg?seed=" + url.QueryEscape(username)
}

// handleRegister handles POST /auth/register.
//
// The uniqueness pre-checks give precise error messages; the store's
// unique constraints remain the arbiter for registrations racing past
// them, surfacing as a conflict either way.
func (a *Adapter) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !a.decodeJSONBody(w, r, &req) {
		return
	}

	req.Normalize()
	if apiErr := req.Validate(); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	if _, err := a.users.GetUserByEmail(r.Context(), req.Email); err == nil {
		transport.WriteAPIError(w, api.NewConflictError("email already exists"))
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		a.writeStoreError(w, r, "get_user_by_email", err)
		return
	}

	if _, err := a.users.GetUserByUsername(r.Context(), req.Username); err == nil {
		transport.WriteAPIError(w, api.NewConflictError("username already exists"))
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		a.writeStoreError(w, r, "get_user_by_username", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.writeStoreError(w, r, "hash_password", err)
		return
	}

	user := &api.User{
		ID:           api.NewUserID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		ProfileImage: avatarURL(req.Username),
	}

	if err := a.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// Lost a race with a concurrent registration.
			transport.WriteAPIError(w, api.NewConflictError("email or username already exists"))
			return
		}
		a.writeStoreError(w, r, "create_user", err)
		return
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		a.writeStoreError(w, r, "issue_token", err)
		return
	}

	observability.RecordRegistration()
	transport.WriteJSON(w, http.StatusCreated, api.AuthResponse{
		Token: token,
		User:  user.Profile(),
	})
}

// handleLogin handles POST /auth/login.
//
// An unknown email and a wrong password produce byte-identical
// responses, so the endpoint cannot be used to probe which emails are
// registered.
func (a *Adapter) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !a.decodeJSONBody(w, r, &req) {
		return
	}

	req.Normalize()
	if apiErr := req.Validate(); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	user, err := a.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			observability.RecordLoginFailure()
			transport.WriteAPIError(w, api.NewInvalidCredentialsError())
			return
		}
		a.writeStoreError(w, r, "get_user_by_email", err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		observability.RecordLoginFailure()
		transport.WriteAPIError(w, api.NewInvalidCredentialsError())
		return
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		a.writeStoreError(w, r, "issue_token", err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.AuthResponse{
		Token: token,
		User:  user.Profile(),
	})
}
