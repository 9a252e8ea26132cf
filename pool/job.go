package pool

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// job is the type-erased unit the dispatch loop operates on. Submit closes
// over the caller's typed function and the future it returns, producing a
// job whose run/cancel methods need no type parameter — the same technique
// the reference implementation uses with std::function<void()> wrapping a
// std::packaged_task<Ret()>.
type job struct {
	id uuid.UUID
	// run executes the unit against ctx, completes the owning future, and
	// reports whether the unit failed (error or panic).
	run func(ctx context.Context) (failed bool)
	// cancel completes the owning future with ErrCancelled without running
	// the unit. Used for work still queued when the pool closes.
	cancel func()
}

// newJob wraps fn and fut into a job. A panic inside fn is recovered here so
// a misbehaving unit cannot take a worker goroutine down with it; the panic
// is reported as a failure on fut instead.
func newJob[T any](id uuid.UUID, fn func(context.Context) (T, error), fut *Future[T]) job {
	return job{
		id: id,
		run: func(ctx context.Context) (failed bool) {
			defer func() {
				if r := recover(); r != nil {
					var zero T
					fut.complete(zero, newTaskTaggedError(fmt.Errorf("%w: %v", ErrTaskPanicked, r), id))
					failed = true
				}
			}()
			v, err := fn(ctx)
			if err != nil {
				var zero T
				v = zero
				err = newTaskTaggedError(err, id)
			}
			fut.complete(v, err)
			return err != nil
		},
		cancel: func() {
			var zero T
			fut.complete(zero, newTaskTaggedError(ErrCancelled, id))
		},
	}
}
