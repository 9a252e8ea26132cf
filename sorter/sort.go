// Package sorter implements the parallel divide-and-conquer sorter from
// spec §4.2: three-way-partition quicksort that offloads the "greater"
// partition of each split as a task on a Task Pool and recurses in place,
// in the same goroutine, on the "less" partition.
//
// Pivot selection and the insertion-sort threshold follow
// original_source/mapreduce/mapreduce/sort.hpp exactly: the pivot is the
// element positioned at the subrange's middle index (no median-of-three
// sampling), and subranges shorter than smallSortThreshold are finished
// with insertion sort instead of recursing further.
package sorter

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/vkolesnikov/partool/pool"
)

// Comparer reports whether a should sort strictly before b. It must be a
// strict weak order: irreflexive, asymmetric, transitive, with transitive
// equivalence.
type Comparer[T any] func(a, b T) bool

// smallSortThreshold is the subrange length below which Sort switches to
// insertion sort instead of partitioning further. Matches sort.hpp's
// `if (diff < 10)`.
const smallSortThreshold = 10

// Sort sorts items in place under less, using its own Task Pool sized to
// workerCount (minimum 1, matching pool.New). Sort returns only after every
// task it submitted has completed; a non-nil error aggregates (via
// go.uber.org/multierr) any failures surfaced by the pool, which can only
// happen if a comparer panics.
//
// Sort is not required to produce a stable ordering (spec §4.2); callers
// needing stability must make the comparer break ties explicitly.
func Sort[T any](ctx context.Context, items []T, workerCount int, less Comparer[T]) error {
	if len(items) < 2 {
		return nil
	}

	p := pool.New(workerCount)
	defer p.Close()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		futures []*pool.Future[struct{}]
	)

	var recurse func(lo, hi int)
	recurse = func(lo, hi int) {
		for {
			n := hi - lo
			if n < 2 {
				return
			}
			if n < smallSortThreshold {
				insertionSort(items[lo:hi], less)
				return
			}

			pivot := items[lo+n/2]
			eqEnd, gtStart := partition3(items[lo:hi], pivot, less)
			eqEnd += lo
			gtStart += lo

			if gtStart < hi {
				greaterLo, greaterHi := gtStart, hi
				wg.Add(1)
				fut := pool.Submit(p, func(_ context.Context) (struct{}, error) {
					defer wg.Done()
					recurse(greaterLo, greaterHi)
					return struct{}{}, nil
				})
				mu.Lock()
				futures = append(futures, fut)
				mu.Unlock()
			}

			// Tail-iterate on [lo, eqEnd) in this same goroutine instead of
			// recursing, per spec §4.2 step 6.
			hi = eqEnd
		}
	}

	recurse(0, len(items))
	wg.Wait()

	var errs error
	for _, f := range futures {
		if _, err := f.Result(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// insertionSort sorts a short slice in place. Matches sort.hpp's
// insertionSort: shift each element left past strictly-greater predecessors.
func insertionSort[T any](s []T, less Comparer[T]) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// partition3 performs a Dutch-national-flag three-way partition of s around
// pivot (captured by value before partitioning starts, per spec §4.2 step
// 3). It returns the end of the "less" region and the start of the
// "greater" region; [end, start) is the "equal" region. Equivalent in
// result to the reference implementation's two-pass std::partition, but
// done in a single linear pass.
func partition3[T any](s []T, pivot T, less Comparer[T]) (lessEnd, greaterStart int) {
	lt, i, gt := 0, 0, len(s)-1
	for i <= gt {
		switch {
		case less(s[i], pivot):
			s[lt], s[i] = s[i], s[lt]
			lt++
			i++
		case less(pivot, s[i]):
			s[i], s[gt] = s[gt], s[i]
			gt--
		default:
			i++
		}
	}
	return lt, gt + 1
}
