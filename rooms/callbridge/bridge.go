package callbridge

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/rooms"
)

const (
	SampleInterval     = 2 * time.Second
	defaultJoinFailure = "Failed to join the room"
	eventBuffer        = 64
)

type Option func(*Bridge)

func WithClock(clock clockwork.Clock) Option {
	return func(b *Bridge) { b.clock = clock }
}

// Bridge tracks one call on a Runtime: it latches joins, translates runtime
// events and samples network quality while joined.
type Bridge struct {
	rt     Runtime
	clock  clockwork.Clock
	logger *log.Logger

	mu           sync.Mutex
	state        State
	quality      *Quality
	smoother     *Smoother
	stopSampling context.CancelFunc
	samplerGen   uint64
	closed       bool
	events       chan Event

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewBridge(rt Runtime, logger *log.Logger, opts ...Option) *Bridge {
	if rt == nil {
		panic("runtime is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bridge{
		rt:       rt,
		clock:    clockwork.NewRealClock(),
		logger:   logger,
		state:    StateDisconnected,
		smoother: NewSmoother(),
		events:   make(chan Event, eventBuffer),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}

	go b.loop()
	return b
}

// Events is closed by Close.
func (b *Bridge) Events() <-chan Event {
	return b.events
}

func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Quality is the last smoothed sample, nil when not joined.
func (b *Bridge) Quality() *Quality {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.quality == nil {
		return nil
	}
	q := *b.quality
	return &q
}

// Join asks the runtime to join url. It does nothing when url is empty or a
// join is already under way or established.
func (b *Bridge) Join(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	b.mu.Lock()
	if b.closed || b.state != StateDisconnected {
		b.mu.Unlock()
		return nil
	}
	b.state = StateJoining
	b.mu.Unlock()

	joinsRequested.Add(ctx, 1)
	b.logger.Info("joining call", log.String("url", url))
	if err := b.rt.Join(ctx, url); err != nil {
		b.fail(errors.Message(err))
		return errors.Wrap(rooms.ErrProviderRuntime, err, "join call")
	}
	return nil
}

// Leave asks the runtime to leave. The state changes when the runtime
// reports left-meeting.
func (b *Bridge) Leave(ctx context.Context) error {
	if err := b.rt.Leave(ctx); err != nil {
		return errors.Wrap(rooms.ErrProviderRuntime, err, "leave call")
	}
	return nil
}

// Close stops sampling and event forwarding and closes Events.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	if b.state == StateJoined {
		callsActive.Add(context.Background(), -1)
	}
	b.stopSamplerLocked()
	b.cancel()
	close(b.events)
	b.mu.Unlock()

	<-b.done
}

func (b *Bridge) loop() {
	defer close(b.done)
	for {
		select {
		case <-b.ctx.Done():
			return
		case ev, ok := <-b.rt.Events():
			if !ok {
				return
			}
			b.handle(ev)
		}
	}
}

func (b *Bridge) handle(ev RuntimeEvent) {
	switch ev.Type {
	case RuntimeJoined:
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed || b.state == StateJoined {
			return
		}
		b.state = StateJoined
		callsActive.Add(b.ctx, 1)
		b.smoother.Reset()
		b.quality = nil
		b.startSamplerLocked()
		b.emitLocked(Event{Kind: EventJoined})
		b.logger.Info("call joined")

	case RuntimeLeft:
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return
		}
		if b.state == StateJoined {
			callsActive.Add(b.ctx, -1)
		}
		b.state = StateDisconnected
		b.quality = nil
		b.stopSamplerLocked()
		b.emitLocked(Event{Kind: EventLeft})
		b.logger.Info("call left")

	case RuntimeError, RuntimeJoinError:
		b.fail(ev.Message)

	default:
		b.logger.Debug("ignoring runtime event", log.String("event", ev.Type))
	}
}

func (b *Bridge) fail(message string) {
	if message == "" {
		message = defaultJoinFailure
	}
	runtimeErrors.Add(b.ctx, 1)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	if b.state == StateJoined {
		callsActive.Add(b.ctx, -1)
	}
	b.state = StateDisconnected
	b.quality = nil
	b.stopSamplerLocked()
	b.emitLocked(Event{Kind: EventError, Message: message})
	b.logger.Warn("call runtime error", log.String("message", message))
}

func (b *Bridge) startSamplerLocked() {
	b.stopSamplerLocked()

	ctx, cancel := context.WithCancel(b.ctx)
	b.stopSampling = cancel
	gen := b.samplerGen
	ticker := b.clock.NewTicker(SampleInterval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				b.sample(ctx, gen)
			}
		}
	}()
}

// stopSamplerLocked cancels the sampler; bumping the generation makes any
// sample already in flight drop its result.
func (b *Bridge) stopSamplerLocked() {
	b.samplerGen++
	if b.stopSampling != nil {
		b.stopSampling()
		b.stopSampling = nil
	}
}

func (b *Bridge) sample(ctx context.Context, gen uint64) {
	stats, err := b.rt.NetworkStats(ctx)
	if err != nil || stats == nil {
		b.logger.Debug("failed to get network stats", log.Error(err))
		return
	}
	loss := PacketLoss(stats)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || gen != b.samplerGen {
		return
	}
	packetLoss.Record(ctx, loss)
	q := Quality{
		Status:       b.smoother.Observe(loss),
		PacketLoss:   loss,
		UploadKbps:   stats.UploadKbps,
		DownloadKbps: stats.DownloadKbps,
	}
	b.quality = &q
	b.emitLocked(Event{Kind: EventQuality, Quality: &q})
}

func (b *Bridge) emitLocked(ev Event) {
	select {
	case b.events <- ev:
	default:
		droppedEvents.Add(b.ctx, 1)
		b.logger.Warn("bridge event dropped", log.String("kind", string(ev.Kind)))
	}
}
