package use

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestEachReleasesEveryResource(t *testing.T) {
	t.Parallel()
	const N = 10
	resources := make([]*fakeResource, N)
	for i := range resources {
		resources[i] = &fakeResource{}
	}
	var ran atomic.Int32
	err := Each(context.Background(), resources, 0, func(_ context.Context, r *fakeResource) error {
		ran.Add(1)
		r.counter++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ran.Load(); got != N {
		t.Fatalf("expected %d operations, got %d", N, got)
	}
	for i, r := range resources {
		if n := r.releases.Load(); n != 1 {
			t.Fatalf("resource %d released %d times, want 1", i, n)
		}
	}
}

func TestEachFirstErrorWinsAndAllReleased(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	resources := []*fakeResource{{}, {}, {}}
	err := Each(context.Background(), resources, 0, func(_ context.Context, r *fakeResource) error {
		if r == resources[1] {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the operation error, got %v", err)
	}
	for i, r := range resources {
		if n := r.releases.Load(); n != 1 {
			t.Fatalf("resource %d released %d times, want 1", i, n)
		}
	}
}

func TestEachRespectsLimit(t *testing.T) {
	t.Parallel()
	const limit = 2
	const N = 12
	resources := make([]*fakeResource, N)
	for i := range resources {
		resources[i] = &fakeResource{}
	}
	var cur, maxSeen atomic.Int64
	err := Each(context.Background(), resources, limit, func(_ context.Context, _ *fakeResource) error {
		c := cur.Add(1)
		for {
			if m := maxSeen.Load(); c <= m || maxSeen.CompareAndSwap(m, c) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		cur.Add(-1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if observed := int(maxSeen.Load()); observed > limit {
		t.Fatalf("observed concurrency %d exceeds limit %d", observed, limit)
	}
}

func TestEachCancelsRemainingOnError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	resources := []*fakeResource{{}, {}}
	cancelObserved := make(chan struct{})
	err := Each(context.Background(), resources, 0, func(ctx context.Context, r *fakeResource) error {
		if r == resources[0] {
			time.Sleep(10 * time.Millisecond)
			return boom
		}
		select {
		case <-ctx.Done():
			close(cancelObserved)
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
			t.Error("sibling did not observe cancellation")
			return nil
		}
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	select {
	case <-cancelObserved:
	default:
		t.Fatal("sibling context was not cancelled")
	}
}
