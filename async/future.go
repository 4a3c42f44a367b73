// Package async provides the minimal future used by the client's read
// and submit paths: one goroutine per dispatched operation, a result
// awaited at most once per caller.
package async

import "context"

// Future resolves to a value or an error exactly once. Multiple
// goroutines may Await the same future concurrently.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go dispatches fn on its own goroutine and returns a future for its
// result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		f.val, f.err = fn()
		close(f.done)
	}()
	return f
}

// Await blocks until the future resolves or ctx is done. Cancelling
// ctx abandons the wait only; the dispatched operation is not
// interrupted and may still complete remotely.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
