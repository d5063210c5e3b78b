// Package workerpool runs blocking filesystem work on a fixed number of
// goroutines so that bursts of requests queue instead of fanning out.
package workerpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

// Errors returned by Submit and Do
var (
	ErrPoolClosed   = fmt.Errorf("worker pool is closed")
	ErrTaskPanicked = fmt.Errorf("task panicked")
)

// Pool is a fixed-size set of workers fed from an unbuffered queue.
// The size never changes after New.
type Pool struct {
	size  int
	tasks chan func()
	quit  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
	log   hclog.Logger

	statsSubmitted atomic.Int64
	statsCompleted atomic.Int64
	statsRejected  atomic.Int64
	statsPanicked  atomic.Int64
}

// Stats is a snapshot of pool counters
type Stats struct {
	Size      int
	Submitted int64
	Completed int64
	Rejected  int64
	Panicked  int64
}

// New starts a pool with size workers
func New(size int, logger hclog.Logger) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", size)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	p := &Pool{
		size:  size,
		tasks: make(chan func()),
		quit:  make(chan struct{}),
		log:   logger,
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker(i)
	}

	p.log.Debug("worker pool started", "workers", size)
	return p, nil
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return p.size
}

// Submit hands task to the next free worker, waiting while all are busy.
// It returns ctx.Err() if ctx ends first, or ErrPoolClosed after Close.
// Once accepted, a task always runs to completion.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if task == nil {
		return fmt.Errorf("cannot submit nil task")
	}

	select {
	case <-p.quit:
		p.statsRejected.Add(1)
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		p.statsSubmitted.Add(1)
		return nil
	case <-ctx.Done():
		p.statsRejected.Add(1)
		return ctx.Err()
	case <-p.quit:
		p.statsRejected.Add(1)
		return ErrPoolClosed
	}
}

// Close stops the workers after their current tasks finish. Safe to call
// more than once.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.quit)
		p.wg.Wait()
		p.log.Debug("worker pool stopped",
			"submitted", p.statsSubmitted.Load(),
			"completed", p.statsCompleted.Load(),
		)
	})
}

// Stats returns a snapshot of the pool counters
func (p *Pool) Stats() Stats {
	return Stats{
		Size:      p.size,
		Submitted: p.statsSubmitted.Load(),
		Completed: p.statsCompleted.Load(),
		Rejected:  p.statsRejected.Load(),
		Panicked:  p.statsPanicked.Load(),
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case task := <-p.tasks:
			p.run(id, task)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(id int, task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.statsPanicked.Add(1)
			p.log.Error("task panicked", "worker", id, "panic", r)
		}
		p.statsCompleted.Add(1)
	}()
	task()
}

type outcome[T any] struct {
	value T
	err   error
}

// Do runs fn on the pool and waits for its result. If ctx ends while fn is
// running, Do returns ctx.Err() and fn keeps running in the background.
func Do[T any](ctx context.Context, p *Pool, fn func() T) (T, error) {
	var zero T
	done := make(chan outcome[T], 1)

	err := p.Submit(ctx, func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome[T]{err: fmt.Errorf("%w: %v", ErrTaskPanicked, r)}
				panic(r)
			}
		}()
		done <- outcome[T]{value: fn()}
	})
	if err != nil {
		return zero, err
	}

	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
