package reservation

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

// Error kinds reported by the reservation engine. Specific failures are derived
// from these with apperror.Newf, so callers classify with errors.Is.
var (
	ErrInvalidInput      = apperror.New(http.StatusBadRequest, "invalid reservation input")
	ErrConflict          = apperror.New(http.StatusConflict, "time slot no longer available")
	ErrNotFound          = apperror.New(http.StatusNotFound, "reservation not found")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "invalid reservation status transition")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")

	ErrCourtNotFound    = apperror.Newf(ErrNotFound, "court not found")
	ErrDateOutOfRange   = apperror.Newf(ErrNotFound, "date outside bookable range")
	ErrCourtUnavailable = apperror.Newf(ErrConflict, "court is not available for booking")
	ErrScheduleBusy     = apperror.Newf(ErrConflict, "court schedule is being updated, please retry")
	ErrNotElapsed       = apperror.Newf(ErrInvalidTransition, "reservation has not ended yet")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted}

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a reservation may move from one status to another.
// Rejected, cancelled and completed are terminal.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Blocking reports whether reservations in this status consume grid capacity.
// Only approved ones do: an unreviewed request does not hold a slot.
func (s Status) Blocking() bool {
	return s == StatusApproved
}

type Reservation struct {
	ID         string
	UserID     string
	CourtID    string
	Date       time.Time // civil date, midnight UTC
	StartTime  Hour
	EndTime    Hour // exclusive
	Duration   int  // hours
	TotalPrice int64
	Status     Status
	Notes      string
	AdminNotes string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether the slot starting at h falls inside [StartTime, EndTime).
func (r *Reservation) Covers(h Hour) bool {
	return r.StartTime <= h && h < r.EndTime
}

// Overlaps reports whether both reservations claim some hour of the same court and day.
func (r *Reservation) Overlaps(o *Reservation) bool {
	return r.CourtID == o.CourtID &&
		r.Date.Equal(o.Date) &&
		r.StartTime < o.EndTime && o.StartTime < r.EndTime
}

// EndsAt is the wall-clock instant the reservation ends in loc.
func (r *Reservation) EndsAt(loc *time.Location) time.Time {
	y, m, d := r.Date.Date()
	return time.Date(y, m, d, int(r.EndTime), 0, 0, 0, loc)
}

func (r *Reservation) clone() *Reservation {
	cp := *r
	return &cp
}

// TimeSlot is one entry of an availability grid.
type TimeSlot struct {
	Time          Hour
	Available     bool
	ReservationID string
}

// Availability is the full grid for one court on one date.
type Availability struct {
	CourtID string
	Date    time.Time
	Slots   []TimeSlot
}

type Filter struct {
	UserID   string
	CourtID  string
	Status   string
	Date     *time.Time
	Page     int
	PageSize int
}

// Summary aggregates reservations sharing a status.
type Summary struct {
	Count      int
	TotalPrice int64
}
