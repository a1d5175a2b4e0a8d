package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/conceptlabs/auth-service/internal/adapters/transport/http/dto"
	authErrors "github.com/conceptlabs/auth-service/internal/domain/auth/errors"
	"github.com/conceptlabs/auth-service/internal/domain/auth/model"
	"github.com/conceptlabs/auth-service/internal/infra/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type svcStub struct {
	err  error
	pair model.TokenPair
	user model.User
}

func (s *svcStub) Register(context.Context, dto.RegisterDTO) (model.TokenPair, error) {
	return s.pair, s.err
}
func (s *svcStub) Login(context.Context, dto.LoginDTO) (model.TokenPair, error) {
	return s.pair, s.err
}
func (s *svcStub) Refresh(context.Context, dto.RefreshDTO) (model.TokenPair, error) {
	return s.pair, s.err
}
func (s *svcStub) Logout(context.Context, dto.LogoutDTO) error { return s.err }
func (s *svcStub) Validate(context.Context, dto.ValidateDTO) (model.User, error) {
	return s.user, s.err
}

func testPair() model.TokenPair {
	return model.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		AccessTTL:    15 * time.Minute,
		RefreshTTL:   7 * 24 * time.Hour,
		UserID:       1,
	}
}

func newTestRouter(svc *svcStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, zap.NewNop())
	return NewRouter(h, &config.Config{}, zap.NewNop())
}

func do(r *gin.Engine, method, path, body string, header ...string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_RegisterSuccess(t *testing.T) {
	r := newTestRouter(&svcStub{pair: testPair()})

	w := do(r, "POST", "/api/auth/register", `{"email":"a@x.com","password":"longpassword1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	require.Equal(t, "access", resp.Data.AccessToken)
	require.Equal(t, "refresh", resp.Data.RefreshToken)
	require.Equal(t, "bearer", resp.Data.TokenType)
	require.Equal(t, 900, resp.Data.ExpiresIn)
	require.Equal(t, 604800, resp.Data.RefreshExpiresIn)
	require.Equal(t, apiVersion, resp.Metadata.Version)
}

func TestHandler_RegisterBadJSON(t *testing.T) {
	r := newTestRouter(&svcStub{pair: testPair()})
	w := do(r, "POST", "/api/auth/register", `{`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_LoginSuccess(t *testing.T) {
	r := newTestRouter(&svcStub{pair: testPair()})
	w := do(r, "POST", "/api/auth/login", `{"email":"a@x.com","password":"longpassword1"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"rate limited", authErrors.ErrRateLimited, http.StatusTooManyRequests},
		{"duplicate email", authErrors.ErrAlreadyExists, http.StatusBadRequest},
		{"invalid credentials", authErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"account inactive", authErrors.ErrAccountInactive, http.StatusForbidden},
		{"invalid token", authErrors.ErrInvalidToken, http.StatusUnauthorized},
		{"revoked token", authErrors.ErrTokenRevoked, http.StatusUnauthorized},
		{"invalid argument", authErrors.NewInvalidArgument("email"), http.StatusBadRequest},
		{"internal", authErrors.WrapInternal(context.DeadlineExceeded, "Login"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&svcStub{err: tc.err})
			w := do(r, "POST", "/api/auth/login", `{"email":"a@x.com","password":"p"}`)
			require.Equal(t, tc.want, w.Code)
		})
	}
}

func TestHandler_RefreshSuccess(t *testing.T) {
	r := newTestRouter(&svcStub{pair: testPair()})
	w := do(r, "POST", "/api/auth/refresh", `{"refresh_token":"refresh"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "refresh", resp.Data.RefreshToken)
}

func TestHandler_Logout(t *testing.T) {
	r := newTestRouter(&svcStub{})
	w := do(r, "POST", "/api/auth/logout", `{"refresh_token":"refresh"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Me(t *testing.T) {
	user := model.User{ID: 7, Email: "a@x.com", IsActive: true, CreatedAt: time.Now()}
	r := newTestRouter(&svcStub{user: user})

	w := do(r, "GET", "/api/auth/me", "", "Authorization", "Bearer some-token")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, uint(7), resp.ID)
	require.Equal(t, "a@x.com", resp.Email)
}

func TestHandler_MeMissingBearer(t *testing.T) {
	r := newTestRouter(&svcStub{})
	w := do(r, "GET", "/api/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(&svcStub{})
	w := do(r, "GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "healthy")
}

func TestRouter_Placeholders(t *testing.T) {
	r := newTestRouter(&svcStub{})

	for _, path := range []string{"/api/concepts", "/api/projects", "/api/chat", "/api/code"} {
		w := do(r, "GET", path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		require.Contains(t, w.Body.String(), "to be implemented", path)
	}

	w := do(r, "GET", "/api/concepts/5", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "concepts 5")
}
