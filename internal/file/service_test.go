package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/storage"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), store, nil)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadImageStoresThumbnail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	content := pngBytes(t, 800, 400)

	f, err := svc.Upload(ctx, UploadInput{
		Filename:     "net.png",
		Content:      bytes.NewReader(content),
		UserID:       "u1",
		MaxSizeBytes: 1 << 20,
		AllowedTypes: ImageTypes,
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, int64(len(content)), f.Size)
	assert.True(t, f.HasThumbnail())
	assert.True(t, strings.HasSuffix(f.StoragePath, ".png"))

	stream, _, err := svc.Download(ctx, f.ID)
	require.NoError(t, err)
	got, err := io.ReadAll(stream)
	require.NoError(t, stream.Close())
	require.NoError(t, err)
	assert.Equal(t, content, got)

	thumbStream, _, err := svc.DownloadThumbnail(ctx, f.ID)
	require.NoError(t, err)
	defer thumbStream.Close()
	thumb, _, err := image.Decode(thumbStream)
	require.NoError(t, err)
	assert.Equal(t, 200, thumb.Bounds().Dx())
	assert.Equal(t, 100, thumb.Bounds().Dy())
}

func TestUploadRejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, UploadInput{Filename: "a.png", Content: bytes.NewReader(nil)})
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = svc.Upload(ctx, UploadInput{Filename: "a.png", Content: bytes.NewReader(pngBytes(t, 50, 50)), MaxSizeBytes: 10})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = svc.Upload(ctx, UploadInput{Filename: "fake.png", Content: strings.NewReader("plain text, not a photo"), AllowedTypes: ImageTypes})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestUploadNonImageHasNoThumbnail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	f, err := svc.Upload(ctx, UploadInput{Filename: "notes.txt", Content: strings.NewReader("hello")})
	require.NoError(t, err)
	assert.Equal(t, "text/plain", f.ContentType)
	assert.False(t, f.HasThumbnail())

	_, _, err = svc.DownloadThumbnail(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNoThumbnail)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	f, err := svc.Upload(ctx, UploadInput{Filename: "p.png", Content: bytes.NewReader(pngBytes(t, 10, 10))})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, f.ID))

	_, err = svc.Get(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, f.ID), ErrNotFound)
}
