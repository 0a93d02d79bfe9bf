package authdemo

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func setupRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := NewService(NewStore(), testSecret, time.Minute)
	handler := NewHandler(service)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router, service
}

func doJSON(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name:       "valid registration",
			body:       map[string]string{"email": "alice@example.com", "password": "Sup3rSecret"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "password too short",
			body:       map[string]string{"email": "bob@example.com", "password": "Ab1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "password missing digit",
			body:       map[string]string{"email": "bob@example.com", "password": "NoDigitsHere"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "password missing uppercase",
			body:       map[string]string{"email": "bob@example.com", "password": "alllower123"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email",
			body:       map[string]string{"email": "not-an-email", "password": "Sup3rSecret"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			body:       map[string]string{"email": "bob@example.com"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupRouter(t)
			w := doJSON(router, http.MethodPost, "/register", tt.body, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := setupRouter(t)

	body := map[string]string{"email": "alice@example.com", "password": "Sup3rSecret"}
	w := doJSON(router, http.MethodPost, "/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/register", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	router, _ := setupRouter(t)

	register := map[string]string{"email": "alice@example.com", "password": "Sup3rSecret"}
	w := doJSON(router, http.MethodPost, "/register", register, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/login", register, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/login", map[string]string{
			"email":    "alice@example.com",
			"password": "WrongPass1",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "Sup3rSecret",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProtected(t *testing.T) {
	router, service := setupRouter(t)

	require.NoError(t, service.Register("alice@example.com", "Sup3rSecret"))
	token, err := service.Login("alice@example.com", "Sup3rSecret")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/protected", nil, map[string]string{
			"Authorization": "Bearer " + token,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "alice@example.com", resp["email"])
	})

	t.Run("missing header", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/protected", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/protected", nil, map[string]string{
			"Authorization": "Token " + token,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/protected", nil, map[string]string{
			"Authorization": "Bearer not.a.token",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewService(service.store, "other-secret", time.Minute)
		foreign, err := other.Login("alice@example.com", "Sup3rSecret")
		require.NoError(t, err)

		w := doJSON(router, http.MethodGet, "/protected", nil, map[string]string{
			"Authorization": "Bearer " + foreign,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestExpiredToken(t *testing.T) {
	router, service := setupRouter(t)

	require.NoError(t, service.Register("alice@example.com", "Sup3rSecret"))

	// Issue a token that is already expired against the same store and secret.
	expired := &Service{store: service.store, jwtSecret: testSecret, tokenTTL: -time.Minute}
	token, err := expired.Login("alice@example.com", "Sup3rSecret")
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/protected", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
