package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType tags a token as access or refresh. Parsing rejects a token whose
// tag does not match the expected kind, so an access token can never be
// replayed at the refresh endpoint and vice versa.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

type AccessClaims struct {
	jwt.RegisteredClaims
	Email     string    `json:"email"`
	TokenType TokenType `json:"type"`
}

// RefreshClaims deliberately carries no email to keep the claim surface of
// the long-lived token minimal.
type RefreshClaims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"type"`
}

type TokenCodec interface {
	GenerateAccessToken(userID uint, email string) (token string, exp time.Time, jti string, err error)

	GenerateRefreshToken(userID uint) (token string, exp time.Time, jti string, err error)

	ValidateAccessToken(raw string) (AccessClaims, error)

	ValidateRefreshToken(raw string) (RefreshClaims, error)

	// Fingerprint is a deterministic one-way digest of the raw token string,
	// used as the revocation-store key so the store never holds the bearer
	// token itself.
	Fingerprint(raw string) string
}
