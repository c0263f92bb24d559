package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockExclusive(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLock()

	token, ok, err := l.Lock(ctx, "court:1:2024-12-20", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.Lock(ctx, "court:1:2024-12-20", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be refused")

	_, ok, _ = l.Lock(ctx, "court:2:2024-12-20", time.Minute)
	assert.True(t, ok, "other keys are independent")

	require.NoError(t, l.Unlock(ctx, "court:1:2024-12-20", token))
	_, ok, _ = l.Lock(ctx, "court:1:2024-12-20", time.Minute)
	assert.True(t, ok)
}

func TestLocalLockStaleTokenCannotRelease(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLock()
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	stale, ok, _ := l.Lock(ctx, "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	fresh, ok, _ := l.Lock(ctx, "k", time.Second)
	require.True(t, ok, "expired lock can be taken over")
	require.NotEqual(t, stale, fresh)

	require.NoError(t, l.Unlock(ctx, "k", stale))
	_, ok, _ = l.Lock(ctx, "k", time.Second)
	assert.False(t, ok, "stale holder must not release the new holder")
}

func TestAcquireSerializes(t *testing.T) {
	l := NewLocalLock()
	opts := Options{TTL: time.Second, Attempts: 200, Wait: time.Millisecond}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := Acquire(context.Background(), l, "k", opts)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestAcquireGivesUp(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLock()
	_, ok, _ := l.Lock(ctx, "k", time.Minute)
	require.True(t, ok)

	_, err := Acquire(ctx, l, "k", Options{TTL: time.Second, Attempts: 2, Wait: time.Millisecond})
	assert.ErrorIs(t, err, ErrNotAcquired)
}
