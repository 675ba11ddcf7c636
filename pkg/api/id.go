package api

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	idLength = 24
	charset  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	userIDPrefix = "user_"
	bookIDPrefix = "book_"
)

var (
	userIDPattern = regexp.MustCompile(`^user_[a-zA-Z0-9]{24}$`)
	bookIDPattern = regexp.MustCompile(`^book_[a-zA-Z0-9]{24}$`)
)

// NewUserID generates a new user ID with the "user_" prefix
// followed by 24 cryptographically random alphanumeric characters.
func NewUserID() string {
	return userIDPrefix + randomAlphanumeric(idLength)
}

// NewBookID generates a new book ID with the "book_" prefix
// followed by 24 cryptographically random alphanumeric characters.
func NewBookID() string {
	return bookIDPrefix + randomAlphanumeric(idLength)
}

// NewImageKey generates a random alphanumeric object-storage key
// fragment for an uploaded cover image.
func NewImageKey() string {
	return randomAlphanumeric(idLength)
}

// ValidateUserID checks whether the given string is a valid user ID
// (matches "user_" + 24 alphanumeric characters).
func ValidateUserID(id string) bool {
	return userIDPattern.MatchString(id)
}

// ValidateBookID checks whether the given string is a valid book ID
// (matches "book_" + 24 alphanumeric characters).
func ValidateBookID(id string) bool {
	return bookIDPattern.MatchString(id)
}

func randomAlphanumeric(n int) string {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b)
}
