package workflow

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imtaco/interview-lobby/internal/log"
)

// Cleanup is one named shutdown step.
type Cleanup struct {
	Name string
	Fn   func(ctx context.Context) error
}

// WaitGracefulShutdown blocks until SIGINT/SIGTERM (or ctx is done), then runs
// the cleanups in order within timeout.
func WaitGracefulShutdown(
	ctx context.Context,
	logger *log.Logger,
	timeout time.Duration,
	cleanups ...Cleanup,
) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Graceful shutdown handler registered")
	<-ctx.Done()

	ctxClean, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic during graceful shutdown", log.Any("error", r))
			}
		}()

		logger.Info("Starting graceful shutdown")
		for _, c := range cleanups {
			if err := c.Fn(ctxClean); err != nil {
				logger.Error("Cleanup step failed", log.String("step", c.Name), log.Error(err))
			}
		}
	}()

	select {
	case <-ctxClean.Done():
		logger.Warn("Shutdown timeout exceeded, forcing exit")
	case <-done:
		logger.Info("Graceful shutdown completed")
	}
}
