// Package background runs fire-and-forget work that must outlive the request
// that started it.
package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a task when the runner was built with a zero timeout.
const DefaultTimeout = 30 * time.Second

var ErrRunnerIsClosed = errors.New("background runner is closed")

// TaskError is reported on the runner's error channel when a task fails.
type TaskError struct {
	Name string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("background task %s: %v", e.Name, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// Runner starts tasks detached from the caller's cancellation. Task values
// (tenant ids, loggers) carried by the caller's context stay visible.
type Runner struct {
	timeout time.Duration
	errs    chan error
	logger  zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewRunner returns a runner whose error channel buffers up to buffer
// failures; failures beyond that are logged and dropped.
func NewRunner(timeout time.Duration, buffer int, logger zerolog.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Runner{
		timeout: timeout,
		errs:    make(chan error, buffer),
		logger:  logger,
	}
}

// Go starts task and returns immediately. The task's context is not cancelled
// when ctx is, but expires after the runner's timeout.
func (r *Runner) Go(ctx context.Context, name string, task func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRunnerIsClosed
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := r.run(taskCtx, task); err != nil {
			r.report(&TaskError{Name: name, Err: err})
		}
	}()
	return nil
}

// Errors returns the failure stream. It is closed by Close.
func (r *Runner) Errors() <-chan error {
	return r.errs
}

// Close refuses new tasks, waits for running ones and closes the error
// channel.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
	close(r.errs)
}

func (r *Runner) run(ctx context.Context, task func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return task(ctx)
}

func (r *Runner) report(err *TaskError) {
	select {
	case r.errs <- err:
	default:
		r.logger.Error().Err(err.Err).Str("task", err.Name).Msg("background error dropped, channel full")
	}
}
