package http

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

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/response"
)

func newRouter(t *testing.T) (*gin.Engine, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := court.NewService(court.NewMemoryRepository(court.DefaultCourts()...))
	jwt := auth.NewJWTManager("test-secret", time.Hour)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), auth.AuthRequired(jwt), auth.RequireAdmin())

	userToken, err := jwt.GenerateAccessToken("u1", "u1@example.com", "user")
	require.NoError(t, err)
	adminToken, err := jwt.GenerateAccessToken("a1", "a1@example.com", auth.RoleAdmin)
	require.NoError(t, err)
	return r, userToken, adminToken
}

func serve(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListCourts(t *testing.T) {
	r, userToken, _ := newRouter(t)

	w := serve(r, http.MethodGet, "/v1/courts", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page response.PageResponse[CourtResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Items, 4)
	assert.Equal(t, "1", page.Items[0].ID)

	w = serve(r, http.MethodGet, "/v1/courts?category=tennis", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(15000), page.Items[0].PricePerHour)

	w = serve(r, http.MethodGet, "/v1/courts?category=curling", userToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/v1/courts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCourt(t *testing.T) {
	r, userToken, _ := newRouter(t)

	w := serve(r, http.MethodGet, "/v1/courts/4", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got CourtResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "maintenance", got.Status)

	w = serve(r, http.MethodGet, "/v1/courts/99", userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndUpdateCourt(t *testing.T) {
	r, userToken, adminToken := newRouter(t)

	body := CreateCourtRequest{
		Name:         "Beach Volleyball",
		Category:     "volleyball",
		Capacity:     12,
		PricePerHour: 12000,
	}

	w := serve(r, http.MethodPost, "/v1/courts", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodPost, "/v1/courts", adminToken, CreateCourtRequest{Name: "No category", Capacity: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/v1/courts", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)
	var created CourtResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "available", created.Status)
	assert.Equal(t, []string{}, created.Amenities)

	closed := "closed"
	w = serve(r, http.MethodPatch, "/v1/courts/"+created.ID, adminToken, UpdateCourtRequest{Status: &closed})
	require.Equal(t, http.StatusOK, w.Code)
	var updated CourtResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "closed", updated.Status)
	assert.Equal(t, int64(12000), updated.PricePerHour)

	bogus := "demolished"
	w = serve(r, http.MethodPatch, "/v1/courts/"+created.ID, adminToken, UpdateCourtRequest{Status: &bogus})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
