package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type memoryRepository struct {
	mu    sync.RWMutex
	users []*User // registration order
	now   func() time.Time
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryRepository) find(match func(*User) bool) *User {
	for _, u := range r.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (r *memoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u := r.find(func(u *User) bool { return u.Email == email }); u != nil {
		return u.clone(), nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u := r.find(func(u *User) bool { return u.ID == id }); u != nil {
		return u.clone(), nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(func(x *User) bool { return x.Email == u.Email }) != nil {
		return ErrEmailAlreadyUsed
	}
	if u.NationalID != "" && r.find(func(x *User) bool { return x.NationalID == u.NationalID }) != nil {
		return ErrNationalIDAlreadyUsed
	}

	u.ID = uuid.NewString()
	u.CreatedAt = r.now()
	r.users = append(r.users, u.clone())
	return nil
}

func (r *memoryRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.find(func(u *User) bool { return u.ID == id })
	if u == nil {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.find(func(u *User) bool { return u.ID == id })
	if u == nil {
		return ErrNotFound
	}
	u.Status = status
	return nil
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email := strings.ToLower(filter.Email)
	var matched []*User
	// Newest first.
	for i := len(r.users) - 1; i >= 0; i-- {
		u := r.users[i]
		if email != "" && !strings.Contains(u.Email, email) {
			continue
		}
		if filter.Status != "" && string(u.Status) != filter.Status {
			continue
		}
		if filter.Role != "" && string(u.Role) != filter.Role {
			continue
		}
		matched = append(matched, u)
	}

	lo, hi := request.Bounds(len(matched), filter.Page, filter.PageSize)
	page := make([]*User, 0, hi-lo)
	for _, u := range matched[lo:hi] {
		page = append(page, u.clone())
	}
	return page, len(matched), nil
}

func (r *memoryRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[Status]int, len(Statuses))
	for _, u := range r.users {
		counts[u.Status]++
	}
	return counts, nil
}
