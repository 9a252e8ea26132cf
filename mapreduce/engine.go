// Package mapreduce implements the in-process MapReduce engine from spec
// §5: a map stage over block-partitioned dataset ranges, a parallel sort
// of the intermediate records by key, a single-threaded grouping and
// partitioning pass, and a reduce stage with exactly reducerCount tasks.
// Grounded on MapReduce::RunComputation in computation.hpp, with
// boost::thread/std::packaged_task replaced by package pool and the
// bespoke quickSort replaced by package sorter.
package mapreduce

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vkolesnikov/partool/metrics"
	"github.com/vkolesnikov/partool/pool"
	"github.com/vkolesnikov/partool/sorter"
)

// Engine runs computations against a shared logger and metrics provider.
// The zero value is not usable; construct with NewEngine.
type Engine struct {
	log     *zap.Logger
	metrics metrics.Provider

	mapRecords    metrics.Counter
	reduceRecords metrics.Counter
	stageDuration metrics.Histogram
}

// NewEngine constructs an Engine.
func NewEngine(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Engine{
		log:     cfg.logger,
		metrics: cfg.metrics,
		mapRecords: cfg.metrics.Counter("mapreduce.map_records_emitted",
			metrics.WithDescription("intermediate records emitted by the map stage")),
		reduceRecords: cfg.metrics.Counter("mapreduce.reduce_records_emitted",
			metrics.WithDescription("output records emitted by the reduce stage")),
		stageDuration: cfg.metrics.Histogram("mapreduce.stage_duration_seconds",
			metrics.WithUnit("s")),
	}
}

var defaultEngine = NewEngine()

// RunComputation runs spec against a process-wide default Engine. Most
// callers that don't need custom logging or metrics can use this instead
// of constructing their own Engine.
func RunComputation(ctx context.Context, spec *Specification) ([]Record, error) {
	return defaultEngine.RunComputation(ctx, spec)
}

// reducerInput is one grouped intermediate key and its collected values,
// the Go counterpart of computation.hpp's
// std::pair<std::string, std::vector<std::string>>.
type reducerInput struct {
	key    string
	values []string
}

// RunComputation validates spec, then runs the map, sort, group/partition,
// and reduce stages in sequence, returning the concatenated reducer
// output in reducer-index order. The engine does not recover from task
// failures: any error surfaces only after every outstanding task for the
// failing stage has been awaited.
func (e *Engine) RunComputation(ctx context.Context, spec *Specification) ([]Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	merged, err := e.runMapStage(spec)
	if err != nil {
		return nil, err
	}
	e.stageDuration.Record(time.Since(start).Seconds())

	start = time.Now()
	comparer := spec.keyComparer()
	if err := sorter.Sort(ctx, merged, spec.sorterCount(), func(a, b Record) bool {
		return comparer(a.Key, b.Key)
	}); err != nil {
		return nil, err
	}
	e.stageDuration.Record(time.Since(start).Seconds())

	start = time.Now()
	buckets := groupAndPartition(merged, spec, comparer)

	out, err := e.runReduceStage(spec, buckets)
	if err != nil {
		return nil, err
	}

	e.stageDuration.Record(time.Since(start).Seconds())
	e.log.Debug("mapreduce computation completed",
		zap.Int("input_records", spec.Dataset.Len()),
		zap.Int("intermediate_records", len(merged)),
		zap.Int("output_records", len(out)),
	)
	return out, nil
}

func (e *Engine) runMapStage(spec *Specification) ([]Record, error) {
	dataSize := spec.Dataset.Len()
	// minPerThread=1 here is a map-stage-specific override: the reduce
	// stage never calls divideByBlocks at all, it always spawns exactly
	// reducerCount tasks.
	blockSize, numTasks := divideByBlocks(dataSize, spec.mapperCount(), 1)
	if numTasks == 0 {
		return nil, nil
	}

	p := pool.New(numTasks)
	defer p.Close()

	futures := make([]*pool.Future[[]Record], numTasks)
	for i := 0; i < numTasks; i++ {
		begin := i * blockSize
		end := begin + blockSize
		if i == numTasks-1 {
			end = dataSize
		}
		futures[i] = pool.Submit(p, func(_ context.Context) ([]Record, error) {
			return e.runMapTask(spec, begin, end)
		})
	}

	var merged []Record
	var errs error
	for _, f := range futures {
		recs, err := f.Result()
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		merged = append(merged, recs...)
	}
	if errs != nil {
		return nil, errs
	}
	e.mapRecords.Add(int64(len(merged)))
	return merged, nil
}

func (e *Engine) runMapTask(spec *Specification, begin, end int) ([]Record, error) {
	factory, err := lookupMapperFactory(spec.Mapper)
	if err != nil {
		return nil, err
	}
	m := factory()
	if setter, ok := m.(UserDataSetter); ok {
		setter.SetUserData(spec.UserData)
	}

	var out []Record
	emit := func(key, value string) { out = append(out, Record{Key: key, Value: value}) }

	for i := begin; i < end; i++ {
		key, value, err := spec.Dataset.Get(i)
		if err != nil {
			return nil, err
		}
		m.Map(key, value, emit)
	}
	return out, nil
}

// groupAndPartition walks the sorted intermediates forming one
// reducerInput per contiguous run of comparer-equal keys, then routes
// each run to a reducer bucket via the partitioner. Using comparer-based
// equivalence instead of exact string equality keeps grouping consistent
// with whatever order a custom KeyComparer defines, rather than assuming
// it agrees with ==.
func groupAndPartition(sorted []Record, spec *Specification, comparer KeyComparer) [][]reducerInput {
	reducerCount := spec.reducerCount()
	buckets := make([][]reducerInput, reducerCount)
	part := spec.partitioner()

	i := 0
	for i < len(sorted) {
		key := sorted[i].Key
		var values []string
		for i < len(sorted) && keysEqual(comparer, sorted[i].Key, key) {
			values = append(values, sorted[i].Value)
			i++
		}
		idx := part(key, reducerCount)
		buckets[idx] = append(buckets[idx], reducerInput{key: key, values: values})
	}
	return buckets
}

func (e *Engine) runReduceStage(spec *Specification, buckets [][]reducerInput) ([]Record, error) {
	reducerCount := spec.reducerCount()

	p := pool.New(reducerCount)
	defer p.Close()

	futures := make([]*pool.Future[[]Record], reducerCount)
	for i := 0; i < reducerCount; i++ {
		bucket := buckets[i]
		futures[i] = pool.Submit(p, func(_ context.Context) ([]Record, error) {
			return e.runReduceTask(spec, bucket)
		})
	}

	var out []Record
	var errs error
	for _, f := range futures {
		recs, err := f.Result()
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, recs...)
	}
	if errs != nil {
		return nil, errs
	}
	e.reduceRecords.Add(int64(len(out)))
	return out, nil
}

func (e *Engine) runReduceTask(spec *Specification, bucket []reducerInput) ([]Record, error) {
	factory, err := lookupReducerFactory(spec.Reducer)
	if err != nil {
		return nil, err
	}
	r := factory()
	if setter, ok := r.(UserDataSetter); ok {
		setter.SetUserData(spec.UserData)
	}

	var out []Record
	emit := func(key, value string) { out = append(out, Record{Key: key, Value: value}) }

	for _, group := range bucket {
		r.Reduce(group.key, group.values, emit)
	}
	return out, nil
}
