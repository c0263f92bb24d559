package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/court-reservation-backend/internal/file"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
	log         *zap.Logger
}

func NewHandler(fileService file.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		fileService: fileService,
		log:         log,
	}
}

// ServeFile serves the file content by ID
func (h *Handler) ServeFile(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "file ID is required", err)
		return
	}

	stream, f, err := h.fileService.Download(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	h.stream(c, stream, f.ContentType, f.Filename)
}

// ServeThumbnail serves the thumbnail image by file ID
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "file ID is required", err)
		return
	}

	stream, f, err := h.fileService.DownloadThumbnail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	// Thumbnails are always JPEG.
	h.stream(c, stream, "image/jpeg", f.Filename+"_thumb.jpg")
}

func (h *Handler) stream(c *gin.Context, body io.Reader, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "inline; filename=\""+filename+"\"")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		// Headers are already sent.
		h.log.Warn("stream file failed", zap.String("filename", filename), zap.Error(err))
	}
}
