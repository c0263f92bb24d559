package http

import (
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
)

// ListCourtsRequest defines query parameters for listing courts.
type ListCourtsRequest struct {
	request.ListParams
	Category string `form:"category" binding:"omitempty,oneof=soccer basketball tennis volleyball multi_sport"`
	Status   string `form:"status" binding:"omitempty,oneof=available maintenance closed"`
}

type CourtResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Capacity     int       `json:"capacity"`
	PricePerHour int64     `json:"price_per_hour"`
	Status       string    `json:"status"`
	Amenities    []string  `json:"amenities"`
	Rules        []string  `json:"rules"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func NewCourtResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Category:     string(c.Category),
		Capacity:     c.Capacity,
		PricePerHour: c.PricePerHour,
		Status:       string(c.Status),
		Amenities:    nonNil(c.Amenities),
		Rules:        nonNil(c.Rules),
		Images:       nonNil(c.Images),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type CreateCourtRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category" binding:"required,oneof=soccer basketball tennis volleyball multi_sport"`
	Capacity     int      `json:"capacity" binding:"required,min=1"`
	PricePerHour int64    `json:"price_per_hour" binding:"min=0"`
	Amenities    []string `json:"amenities"`
	Rules        []string `json:"rules"`
	Images       []string `json:"images"`
}

type UpdateCourtRequest struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Capacity     *int      `json:"capacity" binding:"omitempty,min=1"`
	PricePerHour *int64    `json:"price_per_hour" binding:"omitempty,min=0"`
	Status       *string   `json:"status" binding:"omitempty,oneof=available maintenance closed"`
	Amenities    *[]string `json:"amenities"`
	Rules        *[]string `json:"rules"`
	Images       *[]string `json:"images"`
}
