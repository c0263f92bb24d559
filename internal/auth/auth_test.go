package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("u1", "ana@example.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = NewJWTManager("other", time.Hour).ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, err := m.GenerateAccessToken("u1", "ana@example.com", "user")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)
	hash, err := h.Hash("s3cret")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.Error(t, h.Compare(hash, "wrong"))
}

func newRouter(m *JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(m), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "email": GetUserEmail(c), "role": GetUserRole(c)})
	})
	r.GET("/admin", AuthRequired(m), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	r := newRouter(m)
	userToken, err := m.GenerateAccessToken("u1", "ana@example.com", "user")
	require.NoError(t, err)
	adminToken, err := m.GenerateAccessToken("a1", "admin@example.com", RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "missing header", path: "/me", want: http.StatusUnauthorized},
		{name: "bad scheme", path: "/me", header: "Token " + userToken, want: http.StatusUnauthorized},
		{name: "garbage token", path: "/me", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "user", path: "/me", header: "Bearer " + userToken, want: http.StatusOK},
		{name: "user on admin route", path: "/admin", header: "Bearer " + userToken, want: http.StatusForbidden},
		{name: "admin on admin route", path: "/admin", header: "bearer " + adminToken, want: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthMiddlewareClaimsCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("secret", time.Hour)
	blocked := func(ctx context.Context, claims *Claims) error {
		if claims.UserID == "banned" {
			return errors.New("account is not approved")
		}
		return nil
	}

	r := gin.New()
	r.GET("/me", AuthRequired(m, blocked), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	serve := func(userID string) *httptest.ResponseRecorder {
		token, err := m.GenerateAccessToken(userID, userID+"@example.com", "user")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, serve("u1").Code)

	w := serve("banned")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "account is not approved")
}
