package jwt

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	customErrors "github.com/conceptlabs/auth-service/internal/domain/auth/errors"
	jwt2 "github.com/conceptlabs/auth-service/internal/domain/auth/jwt"
	"github.com/conceptlabs/auth-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenCodecImpl struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
}

func NewTokenCodec(cfg *config.Config) *TokenCodecImpl {
	return &TokenCodecImpl{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		issuer:     cfg.Issuer,
	}
}

func (t *TokenCodecImpl) GenerateAccessToken(userID uint, email string) (string, time.Time, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := jwt2.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
			ID:        jti,
		},
		Email:     email,
		TokenType: jwt2.TokenTypeAccess,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

func (t *TokenCodecImpl) GenerateRefreshToken(userID uint) (string, time.Time, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := jwt2.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.refreshTTL)),
			ID:        jti,
		},
		TokenType: jwt2.TokenTypeRefresh,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign refresh token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

func (t *TokenCodecImpl) ValidateAccessToken(raw string) (jwt2.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt2.AccessClaims{}, t.keyFunc, jwt.WithIssuedAt())
	if err != nil || !token.Valid {
		return jwt2.AccessClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt2.AccessClaims)
	if !ok {
		return jwt2.AccessClaims{}, customErrors.ErrInvalidToken
	}

	if claims.TokenType != jwt2.TokenTypeAccess {
		return jwt2.AccessClaims{}, customErrors.ErrInvalidToken
	}

	if t.issuer != "" && claims.Issuer != t.issuer {
		return jwt2.AccessClaims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}

func (t *TokenCodecImpl) ValidateRefreshToken(raw string) (jwt2.RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt2.RefreshClaims{}, t.keyFunc, jwt.WithIssuedAt())
	if err != nil || !token.Valid {
		return jwt2.RefreshClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt2.RefreshClaims)
	if !ok {
		return jwt2.RefreshClaims{}, customErrors.ErrInvalidToken
	}

	if claims.TokenType != jwt2.TokenTypeRefresh {
		return jwt2.RefreshClaims{}, customErrors.ErrInvalidToken
	}

	if t.issuer != "" && claims.Issuer != t.issuer {
		return jwt2.RefreshClaims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}

func (t *TokenCodecImpl) Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (t *TokenCodecImpl) keyFunc(tok *jwt.Token) (interface{}, error) {
	if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, customErrors.ErrInvalidToken
	}
	return t.secret, nil
}
