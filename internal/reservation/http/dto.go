package http

import (
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
)

type AvailabilityQuery struct {
	Date string `form:"date" binding:"required"`
}

type TimeSlotResponse struct {
	Time          string `json:"time"`
	Available     bool   `json:"available"`
	ReservationID string `json:"reservation_id,omitempty"`
}

type AvailabilityResponse struct {
	CourtID string             `json:"court_id"`
	Date    string             `json:"date"`
	Slots   []TimeSlotResponse `json:"slots"`
}

func NewAvailabilityResponse(a *reservation.Availability) AvailabilityResponse {
	slots := make([]TimeSlotResponse, len(a.Slots))
	for i, s := range a.Slots {
		slots[i] = TimeSlotResponse{
			Time:          s.Time.String(),
			Available:     s.Available,
			ReservationID: s.ReservationID,
		}
	}
	return AvailabilityResponse{
		CourtID: a.CourtID,
		Date:    a.Date.Format(reservation.DateLayout),
		Slots:   slots,
	}
}

// CreateReservationRequest is the payload for POST /v1/reservations.
// TimeSlots is the unordered set of selected slot starts ("HH:00").
type CreateReservationRequest struct {
	CourtID   string   `json:"court_id" binding:"required"`
	Date      string   `json:"date" binding:"required"`
	TimeSlots []string `json:"time_slots"`
	Notes     string   `json:"notes" binding:"max=500"`
}

type ReviewRequest struct {
	AdminNotes string `json:"admin_notes" binding:"max=500"`
}

type ListReservationsRequest struct {
	request.ListParams
	UserID  string `form:"user_id"`
	CourtID string `form:"court_id"`
	Status  string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled completed"`
	Date    string `form:"date"`
}

type ReservationResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CourtID    string    `json:"court_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Duration   int       `json:"duration"`
	TotalPrice int64     `json:"total_price"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	AdminNotes string    `json:"admin_notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		CourtID:    r.CourtID,
		Date:       r.Date.Format(reservation.DateLayout),
		StartTime:  r.StartTime.String(),
		EndTime:    r.EndTime.String(),
		Duration:   r.Duration,
		TotalPrice: r.TotalPrice,
		Status:     string(r.Status),
		Notes:      r.Notes,
		AdminNotes: r.AdminNotes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
