// Package workers provides the bounded goroutine pool that runs
// transcription tasks in the background.
package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task is one unit of background work. The context is the pool's run
// context; task-level cancellation is handled by the submitter.
type Task func(ctx context.Context)

// ErrQueueFull is returned by Submit when the task queue is at capacity.
var ErrQueueFull = fmt.Errorf("worker queue full")

// Pool runs submitted tasks on a fixed set of worker goroutines backed by a
// bounded queue.
type Pool struct {
	workerCount int
	tasks       chan Task
	wg          sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewPool creates a pool with workerCount goroutines and a queue holding up
// to queueSize pending tasks.
func NewPool(workerCount, queueSize int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		workerCount: workerCount,
		tasks:       make(chan Task, queueSize),
	}
}

// Start launches the worker goroutines. Calling Start twice is an error.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}
	p.started = true

	log.Info().Int("workers", p.workerCount).Int("queue", cap(p.tasks)).Msg("starting worker pool")

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.run(ctx, i+1)
	}
	return nil
}

// Stop closes the queue and waits for in-flight tasks to finish. Pending
// queued tasks are still drained before workers exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	log.Info().Msg("stopping worker pool")
	close(p.tasks)
	p.wg.Wait()
}

// Submit enqueues a task without blocking. Returns ErrQueueFull when the
// queue is at capacity and an error after Stop.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return fmt.Errorf("worker pool stopped")
	}
	p.mu.Unlock()

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()

	log.Debug().Int("worker", id).Msg("worker started")
	defer log.Debug().Int("worker", id).Msg("worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.runTask(ctx, id, task)
		}
	}
}

// runTask isolates panics so one bad task cannot take down a worker.
func (p *Pool) runTask(ctx context.Context, id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("worker", id).Interface("panic", r).Msg("task panicked")
		}
	}()
	task(ctx)
}
