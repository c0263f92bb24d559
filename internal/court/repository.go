package court

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
)

type Repository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, c *Court) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type memoryRepository struct {
	mu     sync.RWMutex
	courts []*Court // insertion order
	byID   map[string]*Court
	nextID int
	now    func() time.Time
}

// NewMemoryRepository creates an in-process catalog holding the given courts.
// Courts without an ID are assigned one.
func NewMemoryRepository(seed ...*Court) Repository {
	r := &memoryRepository{
		byID:   make(map[string]*Court),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, c := range seed {
		_ = r.Create(context.Background(), c)
	}
	return r
}

func (r *memoryRepository) Create(ctx context.Context, c *Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = strconv.Itoa(r.nextID)
	}
	r.nextID++
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}
	c.UpdatedAt = c.CreatedAt

	stored := c.clone()
	r.courts = append(r.courts, stored)
	r.byID[stored.ID] = stored
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c.clone(), nil
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*Court, 0, len(r.courts))
	for _, c := range r.courts {
		if filter.Category != "" && string(c.Category) != filter.Category {
			continue
		}
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		matched = append(matched, c)
	}

	lo, hi := request.Bounds(len(matched), filter.Page, filter.PageSize)
	page := make([]*Court, 0, hi-lo)
	for _, c := range matched[lo:hi] {
		page = append(page, c.clone())
	}
	return page, len(matched), nil
}

func (r *memoryRepository) Update(ctx context.Context, c *Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[c.ID]
	if !ok {
		return ErrNotFound
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.now()
	updated := c.clone()

	idx := slices.Index(r.courts, existing)
	r.courts[idx] = updated
	r.byID[c.ID] = updated
	return nil
}

func (r *memoryRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[Status]int, len(Statuses))
	for _, c := range r.courts {
		counts[c.Status]++
	}
	return counts, nil
}
