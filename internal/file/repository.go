package file

import (
	"context"
	"sync"
)

type Repository interface {
	Create(ctx context.Context, file *File) error
	GetByID(ctx context.Context, id string) (*File, error)
	Delete(ctx context.Context, id string) error
}

type memoryRepository struct {
	mu    sync.RWMutex
	files map[string]File
}

func NewMemoryRepository() Repository {
	return &memoryRepository{files: make(map[string]File)}
}

func (r *memoryRepository) Create(ctx context.Context, f *File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[f.ID] = *f
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return ErrNotFound
	}
	delete(r.files, id)
	return nil
}
