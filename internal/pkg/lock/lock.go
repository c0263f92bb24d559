package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned by Acquire when the key stayed held for every attempt.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker is a non-blocking, expiring mutual exclusion primitive keyed by string.
// Lock reports false when the key is already held. Holders release with the
// token returned by Lock so an expired holder cannot release a newer one.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// Options controls how Acquire retries a contended key.
type Options struct {
	TTL      time.Duration
	Attempts int
	Wait     time.Duration
}

// DefaultOptions suit the short critical sections around reservation commits.
var DefaultOptions = Options{
	TTL:      5 * time.Second,
	Attempts: 20,
	Wait:     25 * time.Millisecond,
}

// Acquire retries Lock until it succeeds, the attempts run out or ctx is done.
// The returned release func is safe to defer.
func Acquire(ctx context.Context, l Locker, key string, opts Options) (func(), error) {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}

	for i := 0; i < opts.Attempts; i++ {
		token, ok, err := l.Lock(ctx, key, opts.TTL)
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// Release on a fresh context: the request context may already be cancelled.
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = l.Unlock(releaseCtx, key, token)
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Wait):
		}
	}
	return nil, ErrNotAcquired
}
