package court

import (
	"net/http"
	"slices"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "court not found")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidCategory = apperror.New(http.StatusBadRequest, "invalid court category")
	ErrInvalidStatus   = apperror.New(http.StatusBadRequest, "invalid court status")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity must be positive")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "price per hour cannot be negative")
)

type Category string

const (
	CategorySoccer     Category = "soccer"
	CategoryBasketball Category = "basketball"
	CategoryTennis     Category = "tennis"
	CategoryVolleyball Category = "volleyball"
	CategoryMultiSport Category = "multi_sport"
)

var Categories = []Category{CategorySoccer, CategoryBasketball, CategoryTennis, CategoryVolleyball, CategoryMultiSport}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusClosed      Status = "closed"
)

var Statuses = []Status{StatusAvailable, StatusMaintenance, StatusClosed}

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Court is a bookable playing surface. Courts are never deleted; they are
// taken out of service through Status.
type Court struct {
	ID           string
	Name         string
	Description  string
	Category     Category
	Capacity     int
	PricePerHour int64 // minor currency units
	Status       Status
	Amenities    []string
	Rules        []string
	Images       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Bookable reports whether new reservations may be placed on the court.
func (c *Court) Bookable() bool {
	return c.Status == StatusAvailable
}

func (c *Court) clone() *Court {
	cp := *c
	cp.Amenities = slices.Clone(c.Amenities)
	cp.Rules = slices.Clone(c.Rules)
	cp.Images = slices.Clone(c.Images)
	return &cp
}

// Filter defines parameters for listing courts.
type Filter struct {
	Category string
	Status   string
	Page     int
	PageSize int
}
