// Package pool implements the task pool described in spec §4.1: a
// fixed-size worker set executing submitted units of work off a single
// FIFO queue, returning a completion handle (Future) per submission.
//
// The queue is an unbounded mutex-and-condition-variable structure rather
// than a buffered channel, deliberately: §4.1's re-entrancy contract lets a
// unit running on a worker submit further units and block waiting on them
// (the sorter in package sorter relies on this). A bounded channel would
// risk the submitting worker blocking on a full queue while every worker,
// including itself, waits on work that can never be dispatched. This
// mirrors the reference implementation's std::queue guarded by a
// std::mutex and std::condition_variable.
package pool

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/vkolesnikov/partool/metrics"
)

// Pool executes submitted units of work on a fixed set of worker
// goroutines. The zero value is not usable; construct with New.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []job
	closing bool
	wg      sync.WaitGroup

	workerCount int
	baseCtx     context.Context
	cancelBase  context.CancelFunc

	log *zap.Logger

	queueDepth   metrics.UpDownCounter
	taskDuration metrics.Histogram
	tasksFailed  metrics.Counter

	closeOnce sync.Once
}

// New creates a Pool with workerCount worker goroutines (minimum 1:
// "1 minimum" per spec §4.1) and starts them immediately. Submissions are
// dispatched FIFO across a single shared queue.
func New(workerCount int, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		workerCount:  workerCount,
		baseCtx:      ctx,
		cancelBase:   cancel,
		log:          cfg.logger,
		queueDepth:   cfg.metrics.UpDownCounter("pool.queue_depth"),
		taskDuration: cfg.metrics.Histogram("pool.task_duration_seconds"),
		tasksFailed:  cfg.metrics.Counter("pool.tasks_failed"),
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.workerLoop()
	}
	return p
}

// WorkerCount returns the configured number of workers.
func (p *Pool) WorkerCount() int { return p.workerCount }

// Submit enqueues a unit whose eventual result is of type T and returns a
// Future that can be awaited to obtain it. Submit never blocks.
func Submit[T any](p *Pool, fn func(ctx context.Context) (T, error)) *Future[T] {
	fut := newFuture[T]()
	id := uuid.New()
	j := newJob(id, fn, fut)

	p.mu.Lock()
	if p.closing {
		p.mu.Unlock()
		var zero T
		fut.complete(zero, newTaskTaggedError(ErrClosed, id))
		return fut
	}
	p.queue = append(p.queue, j)
	p.queueDepth.Add(1)
	p.mu.Unlock()
	p.cond.Signal() // submission wakes one worker

	return fut
}

func (p *Pool) workerLoop() {
	defer p.wg.Done()
	for {
		j, ok := p.dequeue()
		if !ok {
			return
		}
		start := time.Now()
		failed := j.run(p.baseCtx)
		p.taskDuration.Record(time.Since(start).Seconds())
		if failed {
			p.tasksFailed.Add(1)
			p.log.Warn("task execution failed", zap.String("task_id", j.id.String()))
		}
	}
}

func (p *Pool) dequeue() (job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) == 0 && !p.closing {
		p.cond.Wait()
	}
	if len(p.queue) == 0 {
		return job{}, false
	}
	j := p.queue[0]
	p.queue = p.queue[1:]
	p.queueDepth.Add(-1)
	return j, true
}

// Close sets the terminating flag, wakes every worker, discards any units
// still queued (completing their futures with ErrCancelled), and joins all
// worker goroutines. Close is idempotent and safe for concurrent callers.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closing = true
		discarded := p.queue
		p.queue = nil
		p.mu.Unlock()
		p.cond.Broadcast()

		for _, j := range discarded {
			j.cancel()
			p.queueDepth.Add(-1)
		}

		p.wg.Wait()
		p.cancelBase()
		p.log.Debug("pool closed", zap.Int("discarded_tasks", len(discarded)))
	})
}
