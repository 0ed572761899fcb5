package storage

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Job is a unit of background work
type Job func(ctx context.Context) error

// Submitter runs jobs outside the request that produced them
type Submitter interface {
	Submit(name string, job Job)
}

// Dispatcher runs submitted jobs on a fixed pool of workers. Failures are
// logged, never returned to the submitter.
type Dispatcher struct {
	jobs   chan namedJob
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger
}

type namedJob struct {
	name string
	run  Job
}

var _ Submitter = (*Dispatcher)(nil)

// NewDispatcher starts workers goroutines reading from a queue of the given size
func NewDispatcher(workers, queue int, logger zerolog.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		jobs:   make(chan namedJob, queue),
		ctx:    ctx,
		cancel: cancel,
		log:    logger.With().Str("component", "dispatcher").Logger(),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for j := range d.jobs {
		if err := j.run(d.ctx); err != nil {
			d.log.Error().Err(err).Str("job", j.name).Msg("background job failed")
		}
	}
}

// Submit queues job, blocking while the queue is full. Jobs submitted
// after Close are dropped.
func (d *Dispatcher) Submit(name string, job Job) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("job", name).Msg("dispatcher closed, job dropped")
		return
	}
	d.jobs <- namedJob{name: name, run: job}
}

// Close stops accepting jobs and waits for queued ones to finish. If ctx
// expires first, running jobs see their context cancelled.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return ctx.Err()
	}
}

// Inline runs jobs synchronously on the caller's goroutine
type Inline struct {
	Log zerolog.Logger
}

var _ Submitter = Inline{}

func (i Inline) Submit(name string, job Job) {
	if err := job(context.Background()); err != nil {
		i.Log.Error().Err(err).Str("job", name).Msg("background job failed")
	}
}
