package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync/atomic"
	"testing"
	"time"
)

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFrom_Iterator(t *testing.T) {
	iter := &sliceIter[string]{items: []string{"a", "b"}}
	got, err := Collect(context.Background(), From[string](iter))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestFromSlice_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, FromSlice([]int{1}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMap(t *testing.T) {
	strs := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (string, error) {
		return fmt.Sprintf("#%d", n), nil
	})
	got, err := Collect(context.Background(), strs)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"#1", "#2", "#3"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMap_Error(t *testing.T) {
	fail := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), fail)
	if err == nil {
		t.Fatal("expected error")
	}
	if !slices.Equal(got, []int{1}) {
		t.Errorf("expected [1] before error, got %v", got)
	}
}

func TestTap(t *testing.T) {
	var seen []int
	tapped := Tap(FromSlice([]int{4, 5}), func(_ context.Context, n int) error {
		seen = append(seen, n)
		return nil
	})
	got, err := Collect(context.Background(), tapped)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{4, 5}) || !slices.Equal(seen, []int{4, 5}) {
		t.Errorf("got %v, seen %v", got, seen)
	}
}

func TestTap_Error(t *testing.T) {
	tapped := Tap(FromSlice([]int{1, 2}), func(_ context.Context, n int) error {
		return errors.New("tap failed")
	})
	if _, err := Collect(context.Background(), tapped); err == nil {
		t.Fatal("expected error")
	}
}

func TestForEach_StopsOnError(t *testing.T) {
	calls := 0
	err := ForEach(context.Background(), FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		calls++
		if n == 2 {
			return errors.New("stop")
		}
		return nil
	})
	if err == nil || calls != 2 {
		t.Errorf("expected stop after 2 calls, got %d calls, err %v", calls, err)
	}
}

func TestParallel(t *testing.T) {
	doubled := Parallel(FromSlice([]int{1, 2, 3, 4, 5}), 3, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), doubled)
	if err != nil {
		t.Fatal(err)
	}
	sort.Ints(got) // order not guaranteed
	if want := []int{2, 4, 6, 8, 10}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParallel_ZeroWorkersRunsSerially(t *testing.T) {
	got, err := Collect(context.Background(), Parallel(FromSlice([]int{1, 2}), 0, func(_ context.Context, n int) (int, error) {
		return n, nil
	}))
	if err != nil || len(got) != 2 {
		t.Errorf("expected 2 values, got %v (err %v)", got, err)
	}
}

func TestParallel_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	items := make([]int, 20)
	p := Parallel(FromSlice(items), 3, func(_ context.Context, n int) (int, error) {
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return n, nil
	})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 20 {
		t.Errorf("expected 20 values, got %d", len(got))
	}
	if peak.Load() > 3 {
		t.Errorf("expected at most 3 concurrent calls, saw %d", peak.Load())
	}
}

func TestParallel_ErrorCancelsWorkers(t *testing.T) {
	boom := errors.New("worker failed")
	var started atomic.Int32
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	failing := Parallel(FromSlice(items), 2, func(ctx context.Context, n int) (int, error) {
		started.Add(1)
		if n == 3 {
			return 0, boom
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Millisecond):
		}
		return n, nil
	})
	_, err := Collect(context.Background(), failing)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the worker error, got %v", err)
	}
	if started.Load() == 100 {
		t.Error("expected remaining items to be dropped after the error")
	}
}
