package event

import (
	"context"
	"time"
)

// Routing keys for reservation outcomes.
const (
	ReservationCreated   = "reservation.created"
	ReservationApproved  = "reservation.approved"
	ReservationRejected  = "reservation.rejected"
	ReservationCancelled = "reservation.cancelled"
	ReservationCompleted = "reservation.completed"
)

// ReservationEvent is the payload published for every reservation outcome.
type ReservationEvent struct {
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	CourtID       string    `json:"court_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	TotalPrice    int64     `json:"total_price"`
	AdminNotes    string    `json:"admin_notes,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher hands outcome events to whatever notifies users.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
}
