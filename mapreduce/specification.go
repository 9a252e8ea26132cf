package mapreduce

import (
	"fmt"

	"go.uber.org/multierr"
)

// Specification configures one MapReduce computation. Grounded on
// MapReduce::Specification in specification.hpp; setters became plain
// exported fields since Go has no access-control reason to hide them, and
// validation moved into a single Validate pass instead of failing
// eagerly per setter.
type Specification struct {
	Dataset Dataset

	// Mapper and Reducer name components registered with RegisterMapper
	// and RegisterReducer.
	Mapper  string
	Reducer string

	// Partitioner and KeyComparer name registered components. Leave
	// empty to use DefaultPartitioner / DefaultKeyComparer.
	Partitioner string
	KeyComparer string

	// MapperCount, ReducerCount and SorterCount must each be at least 1;
	// Validate rejects zero or negative counts. NewSpecification sets
	// all three to 1, matching the reference implementation's
	// constructor defaults.
	MapperCount  int
	ReducerCount int
	SorterCount  int

	// UserData is handed to every Mapper/Reducer instance that
	// implements UserDataSetter.
	UserData any
}

// NewSpecification returns a Specification with the reference
// implementation's default counts of 1.
func NewSpecification() *Specification {
	return &Specification{MapperCount: 1, ReducerCount: 1, SorterCount: 1}
}

// Validate checks that the specification names registered components, a
// dataset, and counts of at least 1 for every task kind, aggregating
// every problem found instead of stopping at the first. A zero count is
// rejected rather than silently treated as "unset"; NewSpecification is
// the opt-in path for the default count of 1.
func (s *Specification) Validate() error {
	var errs error

	if s.Mapper == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: mapper name is required", ErrInvalidSpecification))
	} else if _, err := lookupMapperFactory(s.Mapper); err != nil {
		errs = multierr.Append(errs, err)
	}

	if s.Reducer == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: reducer name is required", ErrInvalidSpecification))
	} else if _, err := lookupReducerFactory(s.Reducer); err != nil {
		errs = multierr.Append(errs, err)
	}

	if s.Partitioner != "" {
		if _, err := lookupPartitioner(s.Partitioner); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if s.KeyComparer != "" {
		if _, err := lookupKeyComparer(s.KeyComparer); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if s.Dataset == nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: dataset is required", ErrInvalidSpecification))
	}

	if s.MapperCount < 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: mapper count must be at least 1", ErrInvalidSpecification))
	}
	if s.ReducerCount < 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: reducer count must be at least 1", ErrInvalidSpecification))
	}
	if s.SorterCount < 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: sorter count must be at least 1", ErrInvalidSpecification))
	}

	return errs
}

// mapperCount, reducerCount and sorterCount return the validated counts
// directly: Validate already rejects anything below 1, so by the time
// Engine.RunComputation reaches these there is no "unset" case left to
// default.
func (s *Specification) mapperCount() int { return s.MapperCount }

func (s *Specification) reducerCount() int { return s.ReducerCount }

func (s *Specification) sorterCount() int { return s.SorterCount }

func (s *Specification) partitioner() Partitioner {
	if s.Partitioner == "" {
		return DefaultPartitioner
	}
	p, _ := lookupPartitioner(s.Partitioner)
	return p
}

func (s *Specification) keyComparer() KeyComparer {
	if s.KeyComparer == "" {
		return DefaultKeyComparer
	}
	c, _ := lookupKeyComparer(s.KeyComparer)
	return c
}
