package content

import "context"

// Result reports the outcome of one mutation. The optimistic change is
// already visible when the Result is returned; the Result settles once the
// remote store has confirmed the change or the kind has been rolled back.
type Result struct {
	done chan struct{}
	err  error
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// settled returns a Result that is already final. It is used for mutations
// that never reach the remote store.
func settled(err error) *Result {
	r := newResult()
	r.settle(err)
	return r
}

func (r *Result) settle(err error) {
	r.err = err
	close(r.done)
}

// Done is closed once the mutation has settled.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Err returns the settlement error, or nil while the mutation is in flight.
func (r *Result) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the mutation settles or ctx ends.
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
