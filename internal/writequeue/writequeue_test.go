package writequeue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitAppliesInOrder(t *testing.T) {
	q := Start(context.Background(), 8)
	defer q.Close()

	var order []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		d := q.Submit(func() error {
			order = append(order, i)
			if i == 4 {
				close(done)
			}
			return nil
		})
		if i < 4 {
			// Don't block on these; only the last one is awaited below.
			go func() { <-d }()
		}
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for jobs to apply")
	}

	for i, v := range order {
		if v != i {
			t.Fatalf("jobs applied out of order: %v", order)
		}
	}
}

func TestSubmitErrorDoesNotKillTheQueue(t *testing.T) {
	q := Start(context.Background(), 4)
	defer q.Close()

	boom := errors.New("boom")
	err := <-q.Submit(func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected the failing job's own error, got %v", err)
	}

	var ran int32
	err = <-q.Submit(func() error {
		atomic.StoreInt32(&ran, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("expected the next job to succeed, got %v", err)
	}
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("expected the queue to keep draining after a failing job")
	}
}

func TestCloseWaitsForDrain(t *testing.T) {
	q := Start(context.Background(), 4)
	var ran int32
	q.Submit(func() error {
		atomic.StoreInt32(&ran, 1)
		return nil
	})
	if err := q.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("expected the queued job to run before Close returns")
	}
}
