package http

import (
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/file"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/court-reservation-backend/internal/report"
)

type ListReportsRequest struct {
	request.ListParams
	CourtID  string `form:"court_id"`
	UserID   string `form:"user_id"`
	Status   string `form:"status" binding:"omitempty,oneof=pending in_progress resolved dismissed"`
	Severity string `form:"severity" binding:"omitempty,oneof=low medium high urgent"`
}

type CreateReportRequest struct {
	CourtID     string `json:"court_id" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=maintenance damage cleanliness equipment"`
	Severity    string `json:"severity" binding:"required,oneof=low medium high urgent"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=2000"`
}

type UpdateReportRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=pending in_progress resolved dismissed"`
	AdminResponse *string `json:"admin_response" binding:"omitempty,max=2000"`
}

type PhotoResponse struct {
	FileID       string `json:"file_id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type ReportResponse struct {
	ID            string          `json:"id"`
	CourtID       string          `json:"court_id"`
	UserID        string          `json:"user_id"`
	Type          string          `json:"type"`
	Severity      string          `json:"severity"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Images        []PhotoResponse `json:"images"`
	Status        string          `json:"status"`
	AdminResponse string          `json:"admin_response,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	ResolvedAt    *time.Time      `json:"resolved_at,omitempty"`
}

// NewPhotoResponse links a stored photo. Thumbnails are generated for every
// accepted image type.
func NewPhotoResponse(fileID string) PhotoResponse {
	return PhotoResponse{
		FileID:       fileID,
		URL:          file.FileURL(fileID),
		ThumbnailURL: file.ThumbnailURL(fileID),
	}
}

func NewReportResponse(r *report.Report) ReportResponse {
	images := make([]PhotoResponse, len(r.Images))
	for i, id := range r.Images {
		images[i] = NewPhotoResponse(id)
	}
	return ReportResponse{
		ID:            r.ID,
		CourtID:       r.CourtID,
		UserID:        r.UserID,
		Type:          string(r.Type),
		Severity:      string(r.Severity),
		Title:         r.Title,
		Description:   r.Description,
		Images:        images,
		Status:        string(r.Status),
		AdminResponse: r.AdminResponse,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		ResolvedAt:    r.ResolvedAt,
	}
}
