package pool

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// TaskMetaError exposes correlation metadata for a task failure: the
// submission's UUID, assigned by Submit. The MapReduce engine uses this to
// report which map or reduce block a propagated failure came from.
type TaskMetaError interface {
	error
	Unwrap() error
	TaskID() uuid.UUID
}

type taskTaggedError struct {
	err error
	id  uuid.UUID
}

func newTaskTaggedError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	return &taskTaggedError{err: err, id: id}
}

func (e *taskTaggedError) Error() string    { return fmt.Sprintf("task %s: %v", e.id, e.err) }
func (e *taskTaggedError) Unwrap() error    { return e.err }
func (e *taskTaggedError) TaskID() uuid.UUID { return e.id }

// ExtractTaskID returns the submission UUID carried by err, if any.
func ExtractTaskID(err error) (uuid.UUID, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskID(), true
	}
	return uuid.Nil, false
}
