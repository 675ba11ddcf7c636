package api

import (
	"net/mail"
	"strings"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6

	// MinUsernameLength is the minimum accepted username length.
	MinUsernameLength = 3
)

// Normalize trims surrounding whitespace and lowercases the email so
// that uniqueness checks are case-insensitive. Called before validation.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
}

// Validate checks the registration request. Checks run in order and
// the first failure wins.
func (r *RegisterRequest) Validate() *APIError {
	if r.Email == "" || r.Username == "" || r.Password == "" {
		return NewValidationError("", "email, username, and password are required")
	}
	if len(r.Password) < MinPasswordLength {
		return NewValidationError("password", "password must be at least 6 characters")
	}
	if len(r.Username) < MinUsernameLength {
		return NewValidationError("username", "username must be at least 3 characters")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return NewValidationError("email", "invalid email address")
	}
	return nil
}

// Normalize lowercases and trims the login email to match the stored form.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate checks that both login fields are present.
func (r *LoginRequest) Validate() *APIError {
	if r.Email == "" || r.Password == "" {
		return NewValidationError("", "email and password are required")
	}
	return nil
}

// Validate checks the create-book request. All fields are required and
// the rating must be an integer between 1 and 5 inclusive.
func (r *CreateBookRequest) Validate() *APIError {
	if r.Title == "" || r.Caption == "" || r.Image == "" || r.Rating == 0 {
		return NewValidationError("", "title, caption, image, and rating are required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return NewValidationError("rating", "rating must be between 1 and 5")
	}
	return nil
}
