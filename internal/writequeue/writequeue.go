// Package writequeue implements the serialized single-writer insert
// queue of spec §4.5/§5: a single goroutine drains a FIFO of mutation
// jobs so the indices never need fine-grained internal locking.
package writequeue

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// job is one queued mutation: Apply performs it against the shared
// indices and Done receives the outcome (buffered, so a caller that
// never reads it — insert, per §5 — cannot block the writer).
type job struct {
	apply func() error
	done  chan error
}

// Queue is a single-consumer FIFO of mutation jobs.
type Queue struct {
	jobs   chan job
	group  *errgroup.Group
	cancel context.CancelFunc
}

// Start launches the writer goroutine and returns the running Queue.
// buffer bounds how many accepted-but-not-yet-applied jobs may queue
// up before Submit blocks the caller.
func Start(ctx context.Context, buffer int) *Queue {
	cctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(cctx)

	q := &Queue{
		jobs:   make(chan job, buffer),
		group:  group,
		cancel: cancel,
	}

	group.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case j, ok := <-q.jobs:
				if !ok {
					return nil
				}
				// A job's own application error is fatal to that job
				// only (spec §4.5/§7) — it must not stop the drain
				// loop or the errgroup.
				j.done <- j.apply()
				close(j.done)
			}
		}
	})

	return q
}

// Submit enqueues apply in writer-application order and returns a
// channel that receives its outcome once applied. Insert (per §5)
// does not need to read from it; Delete does.
func (q *Queue) Submit(apply func() error) <-chan error {
	done := make(chan error, 1)
	q.jobs <- job{apply: apply, done: done}
	return done
}

// Close stops accepting new jobs, drains whatever is already queued,
// and waits for the writer goroutine to exit.
func (q *Queue) Close() error {
	close(q.jobs)
	err := q.group.Wait()
	q.cancel()
	if err == context.Canceled {
		return nil
	}
	return err
}
