package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed      = apperror.New(http.StatusConflict, "email already used")
	ErrNationalIDAlreadyUsed = apperror.New(http.StatusConflict, "national id already registered")
	ErrInvalidCredentials    = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrNotApproved           = apperror.New(http.StatusForbidden, "account is not approved")
	ErrEmailRequired         = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort      = apperror.New(http.StatusBadRequest, "password is too short")
	ErrFullNameRequired      = apperror.New(http.StatusBadRequest, "full name is required")
	ErrNationalIDRequired    = apperror.New(http.StatusBadRequest, "national id is required")
	ErrInvalidStatusChange   = apperror.New(http.StatusBadRequest, "invalid account status change")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

// User is a community member or administrator account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	FullName     string
	NationalID   string
	Phone        string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) clone() *User {
	cp := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		cp.LastLoginAt = &t
	}
	return &cp
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string // substring, case-insensitive
	Status   string
	Role     string
	Page     int
	PageSize int
}
