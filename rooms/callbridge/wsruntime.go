package callbridge

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/rooms"
)

const (
	ErrBufferFull errors.Code = "buffer_full"
	ErrClosed     errors.Code = "closed"
)

const (
	pingInterval = 10 * time.Second
	pingTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
	statsTimeout = 1500 * time.Millisecond
	bufMessages  = 32
)

// Browser to server message types.
const (
	msgRuntimeEvent = "runtime-event"
	msgStats        = "stats"
	CommandJoin     = "request-join"
	CommandLeave    = "request-leave"
)

// Server to browser message types.
const (
	msgJoin         = "join"
	msgLeave        = "leave"
	msgStatsRequest = "stats-request"
	msgBridgeEvent  = "bridge-event"
)

type wireMessage struct {
	Type    string        `json:"type"`
	ID      uint64        `json:"id,omitempty"`
	URL     string        `json:"url,omitempty"`
	Room    string        `json:"room,omitempty"`
	Event   string        `json:"event,omitempty"`
	Message string        `json:"message,omitempty"`
	Stats   *NetworkStats `json:"stats,omitempty"`
	Bridge  *Event        `json:"bridge,omitempty"`
}

// Command is a request from the page hosting the call, e.g. to join a room.
type Command struct {
	Type string
	Room string
}

type statsReply struct {
	stats *NetworkStats
	err   error
}

// WSRuntime is a Runtime whose provider client runs in a browser page on the
// other end of a websocket. The page reports runtime events and answers
// stats requests; it also sends join and leave commands.
type WSRuntime struct {
	conn   *websocket.Conn
	logger *log.Logger

	events   chan RuntimeEvent
	commands chan Command
	chWrite  chan wireMessage

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan statsReply

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewWSRuntime(conn *websocket.Conn, logger *log.Logger) *WSRuntime {
	if logger == nil {
		panic("logger is required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WSRuntime{
		conn:     conn,
		logger:   logger,
		events:   make(chan RuntimeEvent, bufMessages),
		commands: make(chan Command, bufMessages),
		chWrite:  make(chan wireMessage, bufMessages),
		pending:  make(map[uint64]chan statsReply),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (w *WSRuntime) Events() <-chan RuntimeEvent { return w.events }

// Commands is closed when Run returns.
func (w *WSRuntime) Commands() <-chan Command { return w.commands }

// Done is closed once the connection is finished.
func (w *WSRuntime) Done() <-chan struct{} { return w.ctx.Done() }

func (w *WSRuntime) Join(_ context.Context, url string) error {
	return w.send(wireMessage{Type: msgJoin, URL: url})
}

func (w *WSRuntime) Leave(_ context.Context) error {
	return w.send(wireMessage{Type: msgLeave})
}

// Notify forwards a bridge event to the page.
func (w *WSRuntime) Notify(ev Event) error {
	return w.send(wireMessage{Type: msgBridgeEvent, Bridge: &ev})
}

func (w *WSRuntime) NetworkStats(ctx context.Context) (*NetworkStats, error) {
	ch := make(chan statsReply, 1)
	w.mu.Lock()
	w.nextID++
	id := w.nextID
	w.pending[id] = ch
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.pending, id)
		w.mu.Unlock()
	}()

	if err := w.send(wireMessage{Type: msgStatsRequest, ID: id}); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()
	select {
	case r := <-ch:
		return r.stats, r.err
	case <-ctx.Done():
		return nil, errors.Wrap(rooms.ErrProviderRuntime, ctx.Err(), "network stats")
	case <-w.ctx.Done():
		return nil, errors.New(ErrClosed, "runtime connection closed")
	}
}

// Run serves the connection until it fails or ctx is done.
func (w *WSRuntime) Run(ctx context.Context) error {
	go func() {
		w.close(w.writePump(ctx))
	}()
	defer close(w.events)
	defer close(w.commands)

	for {
		var msg wireMessage
		if err := wsjson.Read(ctx, w.conn, &msg); err != nil {
			w.close(err)
			return err
		}
		w.dispatch(msg)
	}
}

func (w *WSRuntime) dispatch(msg wireMessage) {
	switch msg.Type {
	case msgRuntimeEvent:
		w.deliverEvent(RuntimeEvent{Type: msg.Event, Message: msg.Message})
	case msgStats:
		w.mu.Lock()
		ch, ok := w.pending[msg.ID]
		w.mu.Unlock()
		if !ok {
			return
		}
		reply := statsReply{stats: msg.Stats}
		if msg.Message != "" {
			reply.err = errors.New(rooms.ErrProviderRuntime, msg.Message)
		}
		select {
		case ch <- reply:
		default:
		}
	case CommandJoin, CommandLeave:
		select {
		case w.commands <- Command{Type: msg.Type, Room: msg.Room}:
		default:
			w.logger.Warn("command dropped", log.String("type", msg.Type))
		}
	default:
		w.logger.Debug("unknown message", log.String("type", msg.Type))
	}
}

func (w *WSRuntime) deliverEvent(ev RuntimeEvent) {
	select {
	case w.events <- ev:
	case <-w.ctx.Done():
	}
}

func (w *WSRuntime) send(msg wireMessage) error {
	select {
	case <-w.ctx.Done():
		return errors.New(ErrClosed, "runtime connection closed")
	default:
	}

	select {
	case w.chWrite <- msg:
		return nil
	default:
		w.close(errors.New(ErrBufferFull, "write buffer full"))
		return errors.New(ErrBufferFull, "write buffer full")
	}
}

func (w *WSRuntime) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.ctx.Done():
			return nil
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := w.conn.Ping(pctx)
			cancel()
			if err != nil {
				return err
			}
		case msg := <-w.chWrite:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, w.conn, msg)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}

func (w *WSRuntime) close(err error) {
	w.closeOnce.Do(func() {
		code := websocket.StatusNormalClosure
		switch {
		case err == nil, errors.Is(err, context.Canceled):
		case websocket.CloseStatus(err) != -1:
			w.logger.Debug("peer closed", log.Any("code", websocket.CloseStatus(err)))
		case errors.Is(err, ErrBufferFull):
			w.logger.Warn("closing runtime connection, write buffer full")
			code = websocket.StatusPolicyViolation
		default:
			w.logger.Info("runtime connection failed", log.Error(err))
			code = websocket.StatusInternalError
		}
		_ = w.conn.Close(code, "bye")
		w.cancel()
	})
}
