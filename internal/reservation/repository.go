package reservation

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
)

// Repository is the reservation store. UpdateStatus enforces the status
// state machine, and refuses an approval that would overlap another approved
// reservation of the same court and date.
type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	ListByCourtAndDate(ctx context.Context, courtID string, date time.Time) ([]*Reservation, error)
	ListApprovedThrough(ctx context.Context, date time.Time) ([]*Reservation, error)
	UpdateStatus(ctx context.Context, id string, to Status, adminNotes *string) (*Reservation, error)
	Summarize(ctx context.Context) (map[Status]Summary, error)
}

type memoryRepository struct {
	mu           sync.RWMutex
	reservations []*Reservation // insertion order
	nextID       int
	now          func() time.Time
}

// NewMemoryRepository creates an in-process store. IDs are assigned from a
// counter starting at 1.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *memoryRepository) Create(ctx context.Context, r *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = strconv.Itoa(m.nextID)
	m.nextID++
	r.CreatedAt = m.now()
	r.UpdatedAt = r.CreatedAt

	m.reservations = append(m.reservations, r.clone())
	return nil
}

func (m *memoryRepository) find(id string) (int, bool) {
	idx := slices.IndexFunc(m.reservations, func(r *Reservation) bool { return r.ID == id })
	return idx, idx >= 0
}

func (m *memoryRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.find(id)
	if !ok {
		return nil, ErrNotFound
	}
	return m.reservations[idx].clone(), nil
}

func (m *memoryRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*Reservation, 0, len(m.reservations))
	// Newest first.
	for i := len(m.reservations) - 1; i >= 0; i-- {
		r := m.reservations[i]
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.CourtID != "" && r.CourtID != filter.CourtID {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		if filter.Date != nil && !r.Date.Equal(*filter.Date) {
			continue
		}
		matched = append(matched, r)
	}

	lo, hi := request.Bounds(len(matched), filter.Page, filter.PageSize)
	page := make([]*Reservation, 0, hi-lo)
	for _, r := range matched[lo:hi] {
		page = append(page, r.clone())
	}
	return page, len(matched), nil
}

func (m *memoryRepository) ListByCourtAndDate(ctx context.Context, courtID string, date time.Time) ([]*Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Reservation
	for _, r := range m.reservations {
		if r.CourtID == courtID && r.Date.Equal(date) {
			out = append(out, r.clone())
		}
	}
	slices.SortStableFunc(out, func(a, b *Reservation) int { return int(a.StartTime - b.StartTime) })
	return out, nil
}

func (m *memoryRepository) ListApprovedThrough(ctx context.Context, date time.Time) ([]*Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Reservation
	for _, r := range m.reservations {
		if r.Status == StatusApproved && !r.Date.After(date) {
			out = append(out, r.clone())
		}
	}
	return out, nil
}

func (m *memoryRepository) UpdateStatus(ctx context.Context, id string, to Status, adminNotes *string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.find(id)
	if !ok {
		return nil, ErrNotFound
	}
	current := m.reservations[idx]

	if !CanTransition(current.Status, to) {
		return nil, apperror.Newf(ErrInvalidTransition, "cannot move reservation from %s to %s", current.Status, to)
	}
	if to.Blocking() {
		for _, other := range m.reservations {
			if other.ID != current.ID && other.Status.Blocking() && other.Overlaps(current) {
				return nil, apperror.Newf(ErrConflict, "overlaps approved reservation %s", other.ID)
			}
		}
	}

	updated := current.clone()
	updated.Status = to
	if adminNotes != nil {
		updated.AdminNotes = *adminNotes
	}
	updated.UpdatedAt = m.now()
	m.reservations[idx] = updated
	return updated.clone(), nil
}

func (m *memoryRepository) Summarize(ctx context.Context) (map[Status]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[Status]Summary, len(Statuses))
	for _, r := range m.reservations {
		s := out[r.Status]
		s.Count++
		s.TotalPrice += r.TotalPrice
		out[r.Status] = s
	}
	return out, nil
}
