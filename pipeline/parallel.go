package pipeline

import (
	"context"
	"sync"
)

// result carries a value or error through a channel.
type result[T any] struct {
	val T
	err error
}

// Parallel applies fn to each value with up to n concurrent workers.
// Order is NOT preserved. The first error from fn or the source is
// delivered to the consumer and cancels the context handed to every
// in-flight call; values still queued are dropped.
func Parallel[I, O any](p *Pipeline[I], n int, fn func(context.Context, I) (O, error)) *Pipeline[O] {
	if n <= 0 {
		n = 1
	}
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			workCtx, cancel := context.WithCancel(ctx)
			source := p.create(workCtx)
			in := make(chan I)
			out := make(chan result[O], n)

			fail := func(err error) {
				select {
				case out <- result[O]{err: err}:
				case <-workCtx.Done():
				}
				cancel()
			}

			go func() {
				defer close(in)
				for {
					v, ok, err := source.Next(workCtx)
					if err != nil {
						fail(err)
						return
					}
					if !ok {
						return
					}
					select {
					case in <- v:
					case <-workCtx.Done():
						return
					}
				}
			}()

			var wg sync.WaitGroup
			for range n {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for v := range in {
						o, err := fn(workCtx, v)
						if err != nil {
							fail(err)
							return
						}
						select {
						case out <- result[O]{val: o}:
						case <-workCtx.Done():
							return
						}
					}
				}()
			}

			go func() {
				wg.Wait()
				close(out)
			}()

			return &parallelIter[O]{out: out, cancel: cancel, source: source.Close}
		},
	}
}

type parallelIter[T any] struct {
	out    <-chan result[T]
	cancel context.CancelFunc
	source func() error
	failed bool
}

func (it *parallelIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.failed {
		return zero, false, nil
	}
	select {
	case r, open := <-it.out:
		if !open {
			return zero, false, nil
		}
		if r.err != nil {
			it.failed = true
			return zero, false, r.err
		}
		return r.val, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (it *parallelIter[T]) Close() error {
	it.cancel()
	// Wait for the workers so no fn call outlives the pipeline.
	for range it.out {
	}
	return it.source()
}
