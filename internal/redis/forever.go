package redis

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/imtaco/interview-lobby/internal/log"
)

// Forever wraps the hash and key operations the note store needs. Each call
// is retried with exponential backoff until it succeeds or ctx is done.
// redis.Nil is a result, not a failure, and is returned without retrying.
type Forever interface {
	HSet(ctx context.Context, key string, values ...any) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type foreverImpl struct {
	client          redis.UniversalClient
	logger          *log.Logger
	initialInterval time.Duration
	maxInterval     time.Duration
}

func NewForever(
	client redis.UniversalClient,
	initialInterval time.Duration,
	maxInterval time.Duration,
	logger *log.Logger,
) Forever {
	if client == nil {
		panic("redis client is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	if initialInterval <= 0 {
		initialInterval = 100 * time.Millisecond
	}
	if maxInterval <= 0 {
		maxInterval = 10 * time.Second
	}

	return &foreverImpl{
		client:          client,
		logger:          logger,
		initialInterval: initialInterval,
		maxInterval:     maxInterval,
	}
}

func (r *foreverImpl) retry(ctx context.Context, op string, fn func() error) error {
	err := fn()
	if err == nil || err == redis.Nil {
		return err
	}
	r.logger.Warn("redis operation failed, retrying",
		log.String("operation", op),
		log.Error(err))

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = 0

	attempt := 1
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		switch {
		case err == nil:
			r.logger.Info("redis operation recovered",
				log.String("operation", op),
				log.Int("attempts", attempt))
			return nil
		case err == redis.Nil:
			return backoff.Permanent(err)
		default:
			r.logger.Debug("redis retry failed",
				log.String("operation", op),
				log.Int("attempt", attempt),
				log.Error(err))
			return err
		}
	}, backoff.WithContext(b, ctx))
}

func (r *foreverImpl) HSet(ctx context.Context, key string, values ...any) error {
	return r.retry(ctx, "HSet", func() error {
		return r.client.HSet(ctx, key, values...).Err()
	})
}

func (r *foreverImpl) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	var out map[string]string
	err := r.retry(ctx, "HGetAll", func() error {
		val, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		out = val
		return nil
	})
	return out, err
}

func (r *foreverImpl) Del(ctx context.Context, keys ...string) error {
	return r.retry(ctx, "Del", func() error {
		return r.client.Del(ctx, keys...).Err()
	})
}

func (r *foreverImpl) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.retry(ctx, "Expire", func() error {
		return r.client.Expire(ctx, key, ttl).Err()
	})
}
