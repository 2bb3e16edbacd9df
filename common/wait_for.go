package common

import (
	"context"
	"time"
)

// Waiter is implemented by *state.State.
type Waiter interface {
	ChanFor(fn func(any) bool) (out <-chan any, cancel func())
}

// Expect starts listening for an event of type T matching filter.
// The returned function blocks until that event arrives, ctx is done, or timeout passes,
// and must be called exactly once.
// Listening starts before Expect returns, so events sent between Expect and the wait are not missed.
func Expect[T any](w Waiter, filter func(T) bool) (wait func(ctx context.Context, timeout time.Duration) (T, bool)) {
	ch, cancel := w.ChanFor(func(i any) bool {
		t, ok := i.(T)
		return ok && filter(t)
	})

	return func(ctx context.Context, timeout time.Duration) (ev T, ok bool) {
		defer cancel()

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case v := <-ch:
			ev, ok = v.(T)
		case <-timer.C:
		case <-ctx.Done():
		}
		return ev, ok
	}
}
