package pqueue

import "errors"

const Namespace = "pqueue"

var (
	// ErrEmptyQueue is returned by Top/ExtractTop when the queue holds no
	// elements.
	ErrEmptyQueue = errors.New(Namespace + ": queue is empty")

	// ErrInvalidHandle is returned when a handle's witness reports the
	// owning queue cleared, its identity is no longer present, or it
	// belongs to a different queue than the one the operation targets.
	ErrInvalidHandle = errors.New(Namespace + ": handle is invalid")

	// ErrMonotonicityViolation is returned by UpdatePriority when the new
	// priority would move the element away from the top under the
	// queue's comparer.
	ErrMonotonicityViolation = errors.New(Namespace + ": new priority moves away from the top")
)
