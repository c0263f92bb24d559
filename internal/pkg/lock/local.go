package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	token   string
	expires time.Time
}

// LocalLock is an in-process Locker used when no Redis is configured.
type LocalLock struct {
	mu   sync.Mutex
	held map[string]entry
	now  func() time.Time
}

func NewLocalLock() *LocalLock {
	return &LocalLock{
		held: make(map[string]entry),
		now:  time.Now,
	}
}

func (l *LocalLock) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if e, ok := l.held[key]; ok && now.Before(e.expires) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.held[key] = entry{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (l *LocalLock) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.held[key]; ok && e.token == token {
		delete(l.held, key)
	}
	return nil
}
