package pool

import "errors"

// Namespace prefixes every sentinel error in this package.
const Namespace = "pool"

var (
	// ErrCancelled is returned by a completion handle whose unit of work was
	// still queued when the pool was closed.
	ErrCancelled = errors.New(Namespace + ": task execution cancelled")

	// ErrTaskPanicked wraps a recovered panic from inside a submitted unit.
	ErrTaskPanicked = errors.New(Namespace + ": task execution panicked")

	// ErrClosed completes the Future returned by Submit when Submit is
	// called after the pool has closed.
	ErrClosed = errors.New(Namespace + ": pool is closed")
)
