package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a one-way salted bcrypt hash of the plaintext.
// The hash embeds its own salt; the plaintext is never stored.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
// Comparison is constant-time-equivalent inside bcrypt; a mismatch
// returns false, never an error.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
