package mapreduce

import "errors"

const Namespace = "mapreduce"

var (
	// ErrInvalidSpecification is returned by Validate (and by
	// RunComputation, which validates internally) when a Specification
	// is missing a required field or has a count below 1. Unregistered
	// component names are reported with ErrNotRegistered instead.
	ErrInvalidSpecification = errors.New(Namespace + ": invalid specification")

	// ErrNotRegistered is returned when a Specification names a mapper,
	// reducer, partitioner, or key comparer that was never registered.
	ErrNotRegistered = errors.New(Namespace + ": component not registered")

	// ErrOutOfBounds is returned by Dataset.Get for an index outside
	// [0, Len()).
	ErrOutOfBounds = errors.New(Namespace + ": dataset index out of bounds")
)
