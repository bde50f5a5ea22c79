//nolint:forcetypeassert
package scheduler

import (
	"container/heap"
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/imtaco/interview-lobby/internal/log"
)

// KeyedScheduler fires string keys on Chan() after a delay. Each key has at
// most one pending deadline.
//
// Enqueue keeps the earliest deadline of a key, Reset replaces it, so
// repeated Reset calls debounce a key until it has been quiet for the delay:
//
//	s := NewKeyedScheduler(logger)
//	defer s.Shutdown()
//
//	s.Reset("owner-1", 30*time.Second)
//	s.Reset("owner-1", 30*time.Second) // pushes the deadline out again
//
//	for key := range s.Chan() {
//		flush(key)
//	}
type KeyedScheduler struct {
	items   map[string]*item
	heap    priorityQueue
	chSig   chan string
	chOps   chan func()
	timer   clockwork.Timer
	timerTS time.Time
	ctx     context.Context
	cancel  context.CancelFunc
	clock   clockwork.Clock
	logger  *log.Logger
}

type Option func(*KeyedScheduler)

func WithClock(clock clockwork.Clock) Option {
	return func(ks *KeyedScheduler) {
		ks.clock = clock
	}
}

func NewKeyedScheduler(logger *log.Logger, opts ...Option) *KeyedScheduler {
	if logger == nil {
		panic("logger is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	ks := &KeyedScheduler{
		chSig:  make(chan string),
		items:  make(map[string]*item),
		heap:   make(priorityQueue, 0),
		chOps:  make(chan func(), 100),
		ctx:    ctx,
		cancel: cancel,
		clock:  clockwork.NewRealClock(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(ks)
	}
	ks.timer = ks.clock.NewTimer(time.Hour)
	ks.timer.Stop()
	heap.Init(&ks.heap)

	go ks.loop()
	return ks
}

func (ks *KeyedScheduler) Chan() <-chan string {
	return ks.chSig
}

// Enqueue schedules key after delay unless it is already due sooner.
func (ks *KeyedScheduler) Enqueue(key string, delay time.Duration) {
	ts := ks.clock.Now().Add(delay)
	ks.submit(func() {
		ks.doEnqueue(&item{key: key, ts: ts}, false)
	})
}

// Reset schedules key after delay, replacing any pending deadline.
func (ks *KeyedScheduler) Reset(key string, delay time.Duration) {
	ts := ks.clock.Now().Add(delay)
	ks.submit(func() {
		ks.doEnqueue(&item{key: key, ts: ts}, true)
	})
}

func (ks *KeyedScheduler) Cancel(key string) {
	ks.submit(func() {
		ks.doCancel(key)
	})
}

func (ks *KeyedScheduler) Clear() {
	ks.submit(ks.doClear)
}

func (ks *KeyedScheduler) Shutdown() {
	ks.cancel()
}

func (ks *KeyedScheduler) submit(op func()) {
	select {
	case ks.chOps <- op:
	case <-ks.ctx.Done():
		ks.logger.Debug("scheduler stopped, dropping operation")
	}
}

func (ks *KeyedScheduler) doEnqueue(it *item, replace bool) {
	if cur, ok := ks.items[it.key]; ok {
		if !replace && !it.ts.Before(cur.ts) {
			return
		}
		heap.Remove(&ks.heap, cur.index)
	}

	ks.items[it.key] = it
	heap.Push(&ks.heap, it)
	ks.scheduleNextTimer()
}

func (ks *KeyedScheduler) doCancel(key string) {
	if it, ok := ks.items[key]; ok {
		delete(ks.items, key)
		heap.Remove(&ks.heap, it.index)
		ks.scheduleNextTimer()
	}
}

func (ks *KeyedScheduler) doClear() {
	ks.items = make(map[string]*item)
	ks.heap = make(priorityQueue, 0)
	heap.Init(&ks.heap)
	ks.clearTimer()
}

func (ks *KeyedScheduler) clearTimer() {
	ks.timer.Stop()
	ks.timerTS = time.Time{}
}

func (ks *KeyedScheduler) scheduleNextTimer() {
	if len(ks.items) == 0 {
		ks.clearTimer()
		return
	}

	top := ks.heap[0]
	if ks.timerTS.Equal(top.ts) {
		return
	}

	delay := max(top.ts.Sub(ks.clock.Now()), 0)
	ks.timerTS = top.ts
	ks.timer.Stop()
	ks.timer.Reset(delay)
}

func (ks *KeyedScheduler) loop() {
	defer close(ks.chSig)
	for {
		select {
		case <-ks.ctx.Done():
			ks.clearTimer()
			return
		case op := <-ks.chOps:
			op()
		case <-ks.timer.Chan():
			ks.clearTimer()
			ks.fireDue()
		}
	}
}

func (ks *KeyedScheduler) fireDue() {
	now := ks.clock.Now()

	for len(ks.items) > 0 && !ks.heap[0].ts.After(now) {
		top := heap.Pop(&ks.heap).(*item)
		delete(ks.items, top.key)

		select {
		case ks.chSig <- top.key:
		case <-ks.ctx.Done():
			return
		}
	}

	ks.scheduleNextTimer()
}
