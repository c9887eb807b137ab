// Package workerpool runs CPU-bound decode work on a bounded set of slots
// shared by all concurrent requests.
package workerpool

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// Pool bounds how many tasks run at once. The zero value is not usable.
type Pool struct {
	slots chan struct{}
}

// New creates a pool with size slots. A size below 1 uses DefaultSize.
func New(size int) *Pool {
	if size < 1 {
		size = DefaultSize()
	}
	return &Pool{slots: make(chan struct{}, size)}
}

// DefaultSize is the number of logical CPUs.
func DefaultSize() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Size returns the number of slots.
func (p *Pool) Size() int {
	return cap(p.slots)
}

// Do waits for a free slot, runs task and waits for it to return.
//
// Cancellation while waiting for a slot returns ctx.Err() without running
// task. Once started, task is expected to observe ctx itself; Do always
// waits for it so the caller can release resources the task uses.
func (p *Pool) Do(ctx context.Context, task func(ctx context.Context) error) error {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.slots }()

	if err := ctx.Err(); err != nil {
		return err
	}
	return task(ctx)
}

// Go runs fn on the pool and returns its result.
func Go[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := p.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
