package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the token lifetime: 15 days from issuance.
const DefaultTokenTTL = 15 * 24 * time.Hour

// Token verification errors.
var (
	// ErrTokenInvalid is returned for tokens with a bad signature or
	// malformed structure.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned for structurally valid tokens past
	// their expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the JWT payload: the user ID plus registered claims.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens. Tokens are
// HS256 JWTs carrying the user ID and an expiry; they are verified,
// not stored, so there is no server-side revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	// now is overridable for expiry tests.
	now func() time.Time
}

// NewTokenService creates a token service with the process-wide signing
// secret. An empty secret is a configuration error: callers must fail
// startup, not defer the problem to the first request.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue produces a signed token embedding the user ID, expiring after
// the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the embedded
// user ID. Expired tokens yield ErrTokenExpired; anything else that
// fails parsing or signature checks yields ErrTokenInvalid. Verify
// never panics on malformed input.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrTokenInvalid
	}

	return claims.UserID, nil
}
