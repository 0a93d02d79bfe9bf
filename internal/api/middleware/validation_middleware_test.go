package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createNoteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Title string `json:"title" binding:"required,max=10"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type noteQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=open closed"`
	Page   int    `form:"page" binding:"omitempty,min=0"`
}

func setupValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation := NewValidationMiddleware()

	router := gin.New()
	router.POST("/notes", validation.ValidateRequest(&createNoteRequest{}), func(c *gin.Context) {
		model, _ := c.Get("validated_model")
		c.JSON(http.StatusOK, gin.H{"data": model})
	})
	router.GET("/notes", validation.ValidateQuery(&noteQuery{}), func(c *gin.Context) {
		query, _ := c.Get("validated_query")
		c.JSON(http.StatusOK, gin.H{"data": query})
	})
	return router
}

func TestValidateRequestEnforcesBindingRules(t *testing.T) {
	router := setupValidationRouter()

	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{"valid payload", `{"email":"a@example.com","title":"hello","color":"#1a2b3c"}`, http.StatusOK, ""},
		{"missing required field", `{"email":"a@example.com"}`, http.StatusBadRequest, "title"},
		{"well-formed json, bad email", `{"email":"not-an-email","title":"hello"}`, http.StatusBadRequest, "email"},
		{"title over max", `{"email":"a@example.com","title":"this title is far too long"}`, http.StatusBadRequest, "title"},
		{"bad color", `{"email":"a@example.com","title":"hello","color":"red"}`, http.StatusBadRequest, "color"},
		{"malformed json", `{"email":`, http.StatusBadRequest, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantField != "" {
				var resp struct {
					Details map[string]string `json:"details"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Contains(t, resp.Details, tc.wantField)
			}
		})
	}
}

func TestValidateQueryEnforcesBindingRules(t *testing.T) {
	router := setupValidationRouter()

	cases := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"valid query", "?status=open&page=2", http.StatusOK},
		{"empty query", "", http.StatusOK},
		{"status outside oneof", "?status=archived", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/notes"+tc.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}
