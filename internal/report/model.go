package report

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "report not found")
	ErrCourtNotFound     = apperror.New(http.StatusNotFound, "court not found")
	ErrInvalidType       = apperror.New(http.StatusBadRequest, "invalid report type")
	ErrInvalidSeverity   = apperror.New(http.StatusBadRequest, "invalid report severity")
	ErrTitleRequired     = apperror.New(http.StatusBadRequest, "title is required")
	ErrDescRequired      = apperror.New(http.StatusBadRequest, "description is required")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "invalid report status transition")
	ErrTooManyPhotos     = apperror.New(http.StatusBadRequest, "report already has the maximum number of photos")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

// MaxPhotos is how many photos a single report may carry.
const MaxPhotos = 5

type Type string

const (
	TypeMaintenance Type = "maintenance"
	TypeDamage      Type = "damage"
	TypeCleanliness Type = "cleanliness"
	TypeEquipment   Type = "equipment"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMaintenance, TypeDamage, TypeCleanliness, TypeEquipment:
		return true
	}
	return false
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
	SeverityUrgent Severity = "urgent"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityUrgent:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusDismissed  Status = "dismissed"
)

var Statuses = []Status{StatusPending, StatusInProgress, StatusResolved, StatusDismissed}

var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusResolved, StatusDismissed},
	StatusInProgress: {StatusResolved, StatusDismissed},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Open reports whether the issue still needs attention.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusInProgress
}

// Report is a user-filed issue about a court.
type Report struct {
	ID            string
	CourtID       string
	UserID        string
	Type          Type
	Severity      Severity
	Title         string
	Description   string
	Images        []string // file IDs
	Status        Status
	AdminResponse string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ResolvedAt    *time.Time
}

func (r *Report) clone() *Report {
	cp := *r
	cp.Images = append([]string(nil), r.Images...)
	if r.ResolvedAt != nil {
		t := *r.ResolvedAt
		cp.ResolvedAt = &t
	}
	return &cp
}

type Filter struct {
	CourtID  string
	UserID   string
	Status   string
	Severity string
	Page     int
	PageSize int
}
