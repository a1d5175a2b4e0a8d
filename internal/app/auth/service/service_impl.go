package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/conceptlabs/auth-service/internal/adapters/transport/http/dto"
	"github.com/conceptlabs/auth-service/internal/app/auth/password"
	customErrors "github.com/conceptlabs/auth-service/internal/domain/auth/errors"
	"github.com/conceptlabs/auth-service/internal/domain/auth/jwt"
	"github.com/conceptlabs/auth-service/internal/domain/auth/model"
	"github.com/conceptlabs/auth-service/internal/domain/auth/repo"
	"github.com/conceptlabs/auth-service/internal/infra/config"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	opRegister = "register"
	opLogin    = "login"
)

type authService struct {
	userRepo repo.UserRepo
	tokens   repo.TokenStore
	limiter  repo.RateLimiter
	codec    jwt.TokenCodec
	cfg      *config.Config
	v        *validator.Validate
	log      *zap.Logger
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.TokenPair, error)
	Login(context.Context, dto.LoginDTO) (model.TokenPair, error)
	Refresh(context.Context, dto.RefreshDTO) (model.TokenPair, error)
	Logout(context.Context, dto.LogoutDTO) error
	Validate(context.Context, dto.ValidateDTO) (model.User, error)
}

func New(
	ur repo.UserRepo,
	ts repo.TokenStore,
	rl repo.RateLimiter,
	codec jwt.TokenCodec,
	cfg *config.Config,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	return &authService{
		userRepo: ur, tokens: ts, limiter: rl, codec: codec, cfg: cfg, v: v, log: log,
	}
}

func (a *authService) Register(ctx context.Context, dto dto.RegisterDTO) (model.TokenPair, error) {
	if err := a.v.Struct(dto); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	if !a.allow(ctx, opRegister, dto.Email, a.cfg.RegisterMaxAttempts, a.cfg.RegisterWindow) {
		return model.TokenPair{}, customErrors.ErrRateLimited
	}

	_, err := a.userRepo.GetUserByEmail(ctx, dto.Email)
	switch {
	case err == nil:
		return model.TokenPair{}, customErrors.ErrAlreadyExists
	case !errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	passwordHash, err := password.Hash(dto.Password)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		Email:        dto.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	id, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		// Two concurrent registrations race on the store's uniqueness
		// constraint; the loser is a duplicate, not an internal failure.
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.TokenPair{}, customErrors.ErrAlreadyExists
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}
	user.ID = id

	a.log.Info("user registered", zap.Uint("user_id", id), zap.String("email", user.Email))
	return a.issueTokens(ctx, user)
}

func (a *authService) Login(ctx context.Context, dto dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(dto); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	if !a.allow(ctx, opLogin, dto.Email, a.cfg.LoginMaxAttempts, a.cfg.LoginWindow) {
		return model.TokenPair{}, customErrors.ErrRateLimited
	}

	user, err := a.userRepo.GetUserByEmail(ctx, dto.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// Same error as a wrong password so account existence never leaks.
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if !password.Verify(dto.Password, user.PasswordHash) {
		a.log.Info("failed login attempt", zap.Uint("user_id", user.ID))
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	// Checked only after the password matched, so an attacker cannot probe
	// account status without the credential.
	if !user.IsActive {
		return model.TokenPair{}, customErrors.ErrAccountInactive
	}

	a.log.Info("user logged in", zap.Uint("user_id", user.ID))
	return a.issueTokens(ctx, user)
}

func (a *authService) Refresh(ctx context.Context, dto dto.RefreshDTO) (model.TokenPair, error) {
	if err := a.v.Struct(dto); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.codec.ValidateRefreshToken(dto.RefreshToken)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	userID, err := subjectID(claims.Subject)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	oldFingerprint := a.codec.Fingerprint(dto.RefreshToken)
	ok, err := a.tokens.VerifyRefreshFingerprint(ctx, userID, oldFingerprint)
	if err != nil {
		// Fail open: a revocation-store outage must not lock everyone out.
		a.log.Warn("revocation store unavailable, skipping fingerprint check",
			zap.Uint("user_id", userID), zap.Error(err))
		ok = true
	}
	if !ok {
		return model.TokenPair{}, customErrors.ErrTokenRevoked
	}

	user, err := a.userRepo.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}
	if !user.IsActive {
		return model.TokenPair{}, customErrors.ErrAccountInactive
	}

	pair, err := a.issueTokens(ctx, user)
	if err != nil {
		return model.TokenPair{}, err
	}

	// Rotation: the superseded fingerprint is deleted only after the new one
	// is stored, so a crash in between strands the old token, not the user.
	if err := a.tokens.RevokeRefreshFingerprint(ctx, userID, oldFingerprint); err != nil {
		a.log.Warn("could not revoke superseded refresh fingerprint",
			zap.Uint("user_id", userID), zap.Error(err))
	}

	a.log.Info("tokens refreshed", zap.Uint("user_id", user.ID))
	return pair, nil
}

func (a *authService) Logout(ctx context.Context, dto dto.LogoutDTO) error {
	if err := a.v.Struct(dto); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.codec.ValidateRefreshToken(dto.RefreshToken)
	if err != nil {
		return customErrors.ErrInvalidToken
	}

	userID, err := subjectID(claims.Subject)
	if err != nil {
		return customErrors.ErrInvalidToken
	}

	fingerprint := a.codec.Fingerprint(dto.RefreshToken)
	if err := a.tokens.RevokeRefreshFingerprint(ctx, userID, fingerprint); err != nil {
		a.log.Warn("could not revoke refresh fingerprint on logout",
			zap.Uint("user_id", userID), zap.Error(err))
	}
	if err := a.tokens.BlacklistToken(ctx, dto.RefreshToken, time.Until(claims.ExpiresAt.Time)); err != nil {
		a.log.Warn("could not blacklist refresh token", zap.Uint("user_id", userID), zap.Error(err))
	}

	// An already expired access token is fine, there is nothing to revoke.
	if dto.AccessToken != "" {
		if acc, errAcc := a.codec.ValidateAccessToken(dto.AccessToken); errAcc == nil {
			_ = a.tokens.BlacklistToken(ctx, dto.AccessToken, time.Until(acc.ExpiresAt.Time))
		}
	}

	a.log.Info("user logged out", zap.Uint("user_id", userID))
	return nil
}

func (a *authService) Validate(ctx context.Context, dto dto.ValidateDTO) (model.User, error) {
	if err := a.v.Struct(dto); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.codec.ValidateAccessToken(dto.AccessToken)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	blacklisted, err := a.tokens.IsBlacklisted(ctx, dto.AccessToken)
	if err != nil {
		// Store outage degrades to signature+expiry checks only.
		blacklisted = false
	}
	if blacklisted {
		return model.User{}, customErrors.ErrTokenRevoked
	}

	userID, err := subjectID(claims.Subject)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "Validate")
	}
	if !user.IsActive {
		return model.User{}, customErrors.ErrAccountInactive
	}

	return user, nil
}

func (a *authService) issueTokens(ctx context.Context, user model.User) (model.TokenPair, error) {
	at, atExp, _, err := a.codec.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, _, err := a.codec.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	now := time.Now()
	fingerprint := a.codec.Fingerprint(rt)
	if err := a.tokens.StoreRefreshFingerprint(ctx, user.ID, fingerprint, rtExp.Sub(now)); err != nil {
		// Fail open: the token is still handed out, the fingerprint check on
		// refresh degrades the same way.
		a.log.Warn("could not store refresh fingerprint",
			zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       user.ID,
	}, nil
}

// allow consults the fixed-window limiter and fails open on store errors.
// Identifiers are case-folded so the budget cannot be multiplied by case
// variations of the same email.
func (a *authService) allow(ctx context.Context, op, identifier string, max int, window time.Duration) bool {
	allowed, err := a.limiter.Allow(ctx, op, strings.ToLower(identifier), max, window)
	if err != nil {
		a.log.Warn("rate limiter unavailable, allowing request",
			zap.String("operation", op), zap.Error(err))
		return true
	}
	return allowed
}

func subjectID(sub string) (uint, error) {
	n, err := strconv.ParseUint(sub, 10, 64)
	return uint(n), err
}
