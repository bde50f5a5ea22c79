package workflow

import "context"

// WithEitherDone returns a context derived from a that is also cancelled when b is done.
func WithEitherDone(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stopB := context.AfterFunc(b, cancel)

	return ctx, func() {
		stopB()
		cancel()
	}
}
