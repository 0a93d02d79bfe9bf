package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-dev/taskflow/internal/api/middleware"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/security/auth"
)

const loginTestSecret = "login-test-secret"

// stubUserService backs the handler tests with a single known account
type stubUserService struct {
	user     *user.User
	password string
}

func (s *stubUserService) CreateUser(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	return s.user, nil
}

func (s *stubUserService) AuthenticateUser(ctx context.Context, email, password string) (*user.User, error) {
	if s.user != nil && email == s.user.Email && password == s.password {
		return s.user, nil
	}
	return nil, user.ErrInvalidCredentials
}

func (s *stubUserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if s.user != nil && id == s.user.ID {
		return s.user, nil
	}
	return nil, user.ErrUserNotFound
}

func (s *stubUserService) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if s.user != nil && email == s.user.Email {
		return s.user, nil
	}
	return nil, user.ErrUserNotFound
}

func (s *stubUserService) ListUsers(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	return []user.User{*s.user}, 1, nil
}

func (s *stubUserService) ListActiveUsers(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	return []user.User{*s.user}, 1, nil
}

func (s *stubUserService) UpdateUser(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) (*user.User, error) {
	return s.user, nil
}

func (s *stubUserService) DeactivateUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.user, nil
}

func (s *stubUserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newLoginTestRouter(t *testing.T) (*gin.Engine, *stubUserService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &stubUserService{
		user: &user.User{
			ID:       uuid.New(),
			Email:    "alice@example.com",
			Username: "alice",
			IsActive: true,
		},
		password: "Sup3rSecret",
	}

	jwtService := auth.NewJWTService(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      loginTestSecret,
			JWTExpiryHours: 1,
			JWTIssuer:      "taskflow-test",
		},
	})
	handler := NewUserHandler(svc, jwtService)

	router := gin.New()
	router.POST("/api/users/login", handler.Login)
	router.POST("/api/users/logout", middleware.NewAuthMiddleware(loginTestSecret), handler.Logout)
	router.GET("/api/users/:id", middleware.NewAuthMiddleware(loginTestSecret), handler.GetUser)
	return router, svc
}

func postJSON(router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginIssuesUsableToken(t *testing.T) {
	router, svc := newLoginTestRouter(t)

	w := postJSON(router, "/api/users/login", gin.H{
		"email":    "alice@example.com",
		"password": "Sup3rSecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)

	claims, err := auth.ValidateToken(resp.Data.Token, loginTestSecret)
	require.NoError(t, err)
	assert.Equal(t, svc.user.ID, claims.UserID)

	// The issued token must get through the auth middleware
	req := httptest.NewRequest(http.MethodGet, "/api/users/"+svc.user.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newLoginTestRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"wrong password", gin.H{"email": "alice@example.com", "password": "WrongPass1"}},
		{"unknown email", gin.H{"email": "nobody@example.com", "password": "Sup3rSecret"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(router, "/api/users/login", tc.body, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	router, _ := newLoginTestRouter(t)

	w := postJSON(router, "/api/users/login", gin.H{"email": "not-an-email"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	router, svc := newLoginTestRouter(t)

	w := postJSON(router, "/api/users/login", gin.H{
		"email":    "alice@example.com",
		"password": "Sup3rSecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	headers := map[string]string{"Authorization": "Bearer " + resp.Data.Token}
	logoutResp := postJSON(router, "/api/users/logout", nil, headers)
	require.Equal(t, http.StatusOK, logoutResp.Code)

	// A blacklisted token can no longer reach protected routes
	req := httptest.NewRequest(http.MethodGet, "/api/users/"+svc.user.ID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
