package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_BoundsConcurrency(t *testing.T) {
	pool := New(2)
	require.Equal(t, 2, pool.Size())

	var running, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pool.Do(context.Background(), func(ctx context.Context) error {
				n := atomic.AddInt32(&running, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPool_CancelWhileWaiting(t *testing.T) {
	pool := New(1)
	release := make(chan struct{})
	started := make(chan struct{})

	go pool.Do(context.Background(), func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := pool.Do(ctx, func(ctx context.Context) error {
		ran = true
		return nil
	})
	close(release)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestGo_ReturnsValueAndError(t *testing.T) {
	pool := New(1)

	n, err := Go(context.Background(), pool, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	boom := errors.New("boom")
	_, err = Go(context.Background(), pool, func(ctx context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestDefaultSize(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultSize(), 1)
	assert.Equal(t, DefaultSize(), New(0).Size())
}
