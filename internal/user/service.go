package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/court-reservation-backend/internal/auth"
)

type RegisterRequest struct {
	Email      string
	Password   string
	FullName   string
	NationalID string
	Phone      string
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Approve(ctx context.Context, id string) (*User, error)
	Reject(ctx context.Context, id string) (*User, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	EnsureAdmin(ctx context.Context, email, password string) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	log    *zap.Logger

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, log *zap.Logger) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		repo:              repo,
		hasher:            hasher,
		log:               log,
		minPasswordLength: 8,
	}
}

// Register creates a pending account. It cannot be used until an
// administrator approves it.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}
	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}
	nationalID := strings.TrimSpace(req.NationalID)
	if nationalID == "" {
		return nil, ErrNationalIDRequired
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        cleanEmail,
		PasswordHash: hash,
		FullName:     fullName,
		NationalID:   nationalID,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         RoleUser,
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("email", u.Email))
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	// Checked after the password so account status is not revealed to strangers.
	if u.Status != StatusApproved {
		return nil, ErrNotApproved
	}

	// Best effort: a failed bookkeeping write does not fail the login.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.log.Warn("update last login failed", zap.String("user_id", u.ID), zap.Error(err))
	} else {
		u.LastLoginAt = &now
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

// Approve activates a pending or previously rejected account.
func (s *service) Approve(ctx context.Context, id string) (*User, error) {
	return s.setStatus(ctx, id, StatusApproved, StatusPending, StatusRejected)
}

// Reject declines a pending account or suspends an approved one.
// Administrator accounts cannot be rejected.
func (s *service) Reject(ctx context.Context, id string) (*User, error) {
	return s.setStatus(ctx, id, StatusRejected, StatusPending, StatusApproved)
}

func (s *service) setStatus(ctx context.Context, id string, to Status, from ...Status) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, f := range from {
		if u.Status == f {
			allowed = true
			break
		}
	}
	if !allowed || (to == StatusRejected && u.IsAdmin()) {
		return nil, ErrInvalidStatusChange
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	u.Status = to

	s.log.Info("user status changed", zap.String("user_id", u.ID), zap.String("status", string(to)))
	return u, nil
}

func (s *service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx)
}

// EnsureAdmin creates an approved administrator with the given credentials
// unless an account with that email already exists.
func (s *service) EnsureAdmin(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	existing, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing admin: %w", err)
	}
	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        cleanEmail,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         RoleAdmin,
		Status:       StatusApproved,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("bootstrap admin created", zap.String("email", u.Email))
	return u, nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
