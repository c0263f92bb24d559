package http

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/file"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/storage"
)

func setup(t *testing.T) (*gin.Engine, file.Service, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := file.NewService(file.NewMemoryRepository(), store, nil)

	jwt := auth.NewJWTManager("test-secret", time.Hour)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, nil), auth.AuthRequired(jwt))

	token, err := jwt.GenerateAccessToken("u1", "u1@example.com", "user")
	require.NoError(t, err)
	return r, svc, token
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func photo(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 400, 400))
	for x := 0; x < 400; x++ {
		img.Set(x, x, color.RGBA{G: 180, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestServeFileAndThumbnail(t *testing.T) {
	r, svc, token := setup(t)
	content := photo(t)

	f, err := svc.Upload(context.Background(), file.UploadInput{
		Filename: "broken-net.png",
		Content:  bytes.NewReader(content),
		UserID:   "u1",
	})
	require.NoError(t, err)

	w := get(r, file.FileURL(f.ID), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "broken-net.png")
	assert.Equal(t, content, w.Body.Bytes())

	w = get(r, file.ThumbnailURL(f.ID), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	thumb, err := jpeg.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, storage.ThumbnailWidth, thumb.Bounds().Dx())

	w = get(r, file.FileURL(f.ID), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServeMissing(t *testing.T) {
	r, svc, token := setup(t)

	w := get(r, file.FileURL("does-not-exist"), token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	f, err := svc.Upload(context.Background(), file.UploadInput{
		Filename: "notes.txt",
		Content:  strings.NewReader("court 2 light flickers"),
		UserID:   "u1",
	})
	require.NoError(t, err)

	w = get(r, file.ThumbnailURL(f.ID), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
