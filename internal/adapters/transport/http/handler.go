package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/conceptlabs/auth-service/internal/adapters/transport/http/dto"
	"github.com/conceptlabs/auth-service/internal/app/auth/service"
	authErrors "github.com/conceptlabs/auth-service/internal/domain/auth/errors"
	"github.com/conceptlabs/auth-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const apiVersion = "1.0.0"

type Handler struct {
	svc service.Service
	log *zap.Logger
}

func NewHandler(svc service.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse("User registered successfully", pair))
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse("Login successful", pair))
}

func (h *Handler) Refresh(c *gin.Context) {
	var body dto.RefreshDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse("Token refreshed successfully", pair))
}

func (h *Handler) Logout(c *gin.Context) {
	var body dto.LogoutDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Logout(c.Request.Context(), body); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{
		Success:  true,
		Message:  "Logged out successfully",
		Metadata: metadata(),
	})
}

func (h *Handler) Me(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	user, err := h.svc.Validate(c.Request.Context(), dto.ValidateDTO{AccessToken: token})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func authResponse(message string, pair model.TokenPair) dto.AuthResponse {
	return dto.AuthResponse{
		Success: true,
		Message: message,
		Data: &dto.TokenResponse{
			AccessToken:      pair.AccessToken,
			TokenType:        "bearer",
			ExpiresIn:        int(pair.AccessTTL.Seconds()),
			RefreshToken:     pair.RefreshToken,
			RefreshExpiresIn: int(pair.RefreshTTL.Seconds()),
		},
		Metadata: metadata(),
	}
}

func metadata() dto.Metadata {
	return dto.Metadata{Version: apiVersion, Timestamp: time.Now().UTC()}
}

func handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsRateLimited(err):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, please try again later"})
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case authErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case authErrors.IsAccountInactive(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "account is inactive"})
	case authErrors.IsTokenRevoked(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
