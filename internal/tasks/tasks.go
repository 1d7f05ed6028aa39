// Package tasks models the simulated delays of the assistant and the disease
// detector as cancellable background tasks.
package tasks

import (
	"context"
	"sync"
	"time"
)

// Task is a unit of delayed work that can be cancelled until it has run.
type Task struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	fired bool
}

func newTask(parent context.Context) *Task {
	ctx, cancel := context.WithCancel(parent)
	return &Task{ctx: ctx, cancel: cancel, done: make(chan struct{})}
}

// After runs fn once, d from now, unless the task or parent is cancelled first.
func After(parent context.Context, d time.Duration, fn func()) *Task {
	t := newTask(parent)
	go func() {
		defer close(t.done)
		defer t.cancel()

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			t.run(fn)
		case <-t.ctx.Done():
		}
	}()
	return t
}

// Every calls fn on each tick until fn returns false or the task is cancelled.
func Every(parent context.Context, interval time.Duration, fn func() bool) *Task {
	t := newTask(parent)
	go func() {
		defer close(t.done)
		defer t.cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				more := true
				t.run(func() { more = fn() })
				if !more {
					return
				}
			case <-t.ctx.Done():
				return
			}
		}
	}()
	return t
}

// run executes fn unless the task was cancelled in the meantime. Holding the
// lock makes Cancel wait for a running fn, so nothing fires after Cancel returns.
// fn must therefore not cancel its own task, nor hold a lock that a caller of
// Cancel holds.
func (t *Task) run(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ctx.Err() != nil {
		return
	}
	fn()
	t.fired = true
}

// Cancel stops the task. It is safe to call more than once and after the task
// has finished.
func (t *Task) Cancel() {
	t.mu.Lock()
	t.cancel()
	t.mu.Unlock()
}

// Done is closed once the task has finished or was cancelled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task has finished.
func (t *Task) Wait() { <-t.done }

// Fired reports whether fn ran at least once.
func (t *Task) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
