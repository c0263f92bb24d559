package report

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, filter Filter) ([]*Report, int, error)
	Update(ctx context.Context, r *Report) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type memoryRepository struct {
	mu      sync.RWMutex
	reports []*Report
	nextID  int
	now     func() time.Time
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *memoryRepository) Create(ctx context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = strconv.Itoa(m.nextID)
	m.nextID++
	r.CreatedAt = m.now()
	r.UpdatedAt = r.CreatedAt
	m.reports = append(m.reports, r.clone())
	return nil
}

func (m *memoryRepository) index(id string) int {
	for i, r := range m.reports {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (m *memoryRepository) GetByID(ctx context.Context, id string) (*Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return m.reports[i].clone(), nil
}

func (m *memoryRepository) List(ctx context.Context, filter Filter) ([]*Report, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*Report
	// Newest first.
	for i := len(m.reports) - 1; i >= 0; i-- {
		r := m.reports[i]
		if filter.CourtID != "" && r.CourtID != filter.CourtID {
			continue
		}
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		if filter.Severity != "" && string(r.Severity) != filter.Severity {
			continue
		}
		matched = append(matched, r)
	}

	lo, hi := request.Bounds(len(matched), filter.Page, filter.PageSize)
	page := make([]*Report, 0, hi-lo)
	for _, r := range matched[lo:hi] {
		page = append(page, r.clone())
	}
	return page, len(matched), nil
}

func (m *memoryRepository) Update(ctx context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(r.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.CreatedAt = m.reports[i].CreatedAt
	r.UpdatedAt = m.now()
	m.reports[i] = r.clone()
	return nil
}

func (m *memoryRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[Status]int, len(Statuses))
	for _, r := range m.reports {
		counts[r.Status]++
	}
	return counts, nil
}
