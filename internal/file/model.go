package file

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "file not found")
	ErrNoThumbnail     = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrEmptyFile       = apperror.New(http.StatusBadRequest, "file is empty")
	ErrFileTooLarge    = apperror.New(http.StatusRequestEntityTooLarge, "file is too large")
	ErrUnsupportedType = apperror.New(http.StatusUnsupportedMediaType, "file type is not allowed")
)

// ImageTypes are the photo formats accepted for court reports.
var ImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// File is an uploaded object and, for images, its thumbnail.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath string // empty when no thumbnail was produced
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

func (f *File) HasThumbnail() bool {
	return f.ThumbnailPath != ""
}

// FileURL returns the API path serving a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the API path serving a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
