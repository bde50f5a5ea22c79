package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithEitherDone(t *testing.T) {
	t.Run("second parent cancels", func(t *testing.T) {
		a := context.Background()
		b, cancelB := context.WithCancel(context.Background())

		ctx, cancel := WithEitherDone(a, b)
		defer cancel()

		cancelB()
		<-ctx.Done()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})

	t.Run("first parent cancels", func(t *testing.T) {
		a, cancelA := context.WithCancel(context.Background())
		ctx, cancel := WithEitherDone(a, context.Background())
		defer cancel()

		cancelA()
		<-ctx.Done()
	})

	t.Run("release keeps parents alive", func(t *testing.T) {
		b, cancelB := context.WithCancel(context.Background())
		defer cancelB()

		ctx, cancel := WithEitherDone(context.Background(), b)
		cancel()
		assert.Error(t, ctx.Err())
		assert.NoError(t, b.Err())
	})
}
