package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/user"
)

func newRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := user.NewService(user.NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4), nil)
	admin, err := svc.EnsureAdmin(context.Background(), "admin@example.com", "admin-password")
	require.NoError(t, err)

	jwt := auth.NewJWTManager("test-secret", time.Hour)
	adminToken, err := jwt.GenerateAccessToken(admin.ID, admin.Email, string(admin.Role))
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, jwt), auth.AuthRequired(jwt), auth.RequireAdmin())
	return r, adminToken
}

func call(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegistrationApprovalLogin(t *testing.T) {
	r, adminToken := newRouter(t)
	creds := LoginRequest{Email: "ana@example.com", Password: "password123"}

	w := call(r, http.MethodPost, "/v1/auth/register", "", RegisterRequest{
		Email: creds.Email, Password: creds.Password, FullName: "Ana Mora", NationalID: "1-1111-1111",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var registered MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "pending", registered.User.Status)

	w = call(r, http.MethodPost, "/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodPost, "/v1/users/"+registered.User.ID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/v1/auth/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.NotEmpty(t, login.AccessToken)

	w = call(r, http.MethodGet, "/v1/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodGet, "/v1/users", login.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodGet, "/v1/users?status=approved", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)
}

func TestRegisterErrors(t *testing.T) {
	r, _ := newRouter(t)
	body := RegisterRequest{Email: "ana@example.com", Password: "password123", FullName: "Ana", NationalID: "1"}

	w := call(r, http.MethodPost, "/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = call(r, http.MethodPost, "/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/v1/auth/register", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPost, "/v1/auth/login", "", LoginRequest{Email: "ana@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
