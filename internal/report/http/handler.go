package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/response"
	"github.com/nekogravitycat/court-reservation-backend/internal/report"
)

// photoField is the multipart form field carrying a report photo.
const photoField = "photo"

type Handler struct {
	service report.Service
}

func NewHandler(service report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReportRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), report.CreateRequest{
		CourtID:     body.CourtID,
		UserID:      auth.GetUserID(c),
		Type:        body.Type,
		Severity:    body.Severity,
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReportResponse(r))
}

// List returns the caller's reports; administrators see all of them.
func (h *Handler) List(c *gin.Context) {
	var req ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	filter := report.Filter{
		CourtID:  req.CourtID,
		UserID:   req.UserID,
		Status:   req.Status,
		Severity: req.Severity,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if !auth.IsAdmin(c) {
		filter.UserID = auth.GetUserID(c)
	}

	reports, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReportResponse, len(reports))
	for i, r := range reports {
		items[i] = NewReportResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !auth.IsAdmin(c) && r.UserID != auth.GetUserID(c) {
		response.Error(c, report.ErrPermissionDenied)
		return
	}

	c.JSON(http.StatusOK, NewReportResponse(r))
}

// Update records an administrator's review of a report. Admin only.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateReportRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	r, err := h.service.Update(c.Request.Context(), uri.ID, report.UpdateRequest{
		Status:        body.Status,
		AdminResponse: body.AdminResponse,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReportResponse(r))
}

// AddPhoto accepts a multipart image upload for a report.
func (h *Handler) AddPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	fileHeader, err := c.FormFile(photoField)
	if err != nil {
		response.BadRequest(c, photoField+" is required", err)
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to read upload", err)
		return
	}
	defer src.Close()

	r, f, err := h.service.AddPhoto(c.Request.Context(), uri.ID, auth.GetUserID(c), auth.IsAdmin(c), fileHeader.Filename, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"photo":  NewPhotoResponse(f.ID),
		"report": NewReportResponse(r),
	})
}
