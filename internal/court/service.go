package court

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name         string
	Description  string
	Category     string
	Capacity     int
	PricePerHour int64
	Amenities    []string
	Rules        []string
	Images       []string
}

// UpdateRequest carries the administrator-mutable fields. Nil means unchanged.
type UpdateRequest struct {
	Name         *string
	Description  *string
	Capacity     *int
	PricePerHour *int64
	Status       *string
	Amenities    *[]string
	Rules        *[]string
	Images       *[]string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Court, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	category := Category(req.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if req.PricePerHour < 0 {
		return nil, ErrInvalidPrice
	}

	c := &Court{
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Category:     category,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		Status:       StatusAvailable,
		Amenities:    cleanList(req.Amenities),
		Rules:        cleanList(req.Rules),
		Images:       cleanList(req.Images),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		c.Name = name
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		c.Capacity = *req.Capacity
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour < 0 {
			return nil, ErrInvalidPrice
		}
		c.PricePerHour = *req.PricePerHour
	}
	if req.Status != nil {
		st := Status(*req.Status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		c.Status = st
	}
	if req.Amenities != nil {
		c.Amenities = cleanList(*req.Amenities)
	}
	if req.Rules != nil {
		c.Rules = cleanList(*req.Rules)
	}
	if req.Images != nil {
		c.Images = cleanList(*req.Images)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx)
}

// cleanList trims entries and drops blanks; it never returns nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
