package transport

import (
	"context"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/internal/workflow"
	"github.com/imtaco/interview-lobby/rooms"
	"github.com/imtaco/interview-lobby/rooms/callbridge"
)

// serveCall upgrades to a websocket whose peer hosts the provider call
// client. Join requests are verified before the bridge joins, and bridge
// events are sent back to the peer.
func (r *Router) serveCall(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: r.cfg.AllowedOrigins,
	})
	if err != nil {
		r.logger.Warn("call websocket open failed",
			log.String("remote_addr", c.Request.RemoteAddr),
			log.Error(err))
		return
	}

	ctx, cancel := workflow.WithEitherDone(c.Request.Context(), r.ctx)
	defer cancel()

	logger := r.logger.Module("call").With(log.String("remote_addr", c.Request.RemoteAddr))
	rt := callbridge.NewWSRuntime(conn, logger)
	bridge := callbridge.NewBridge(rt, logger, callbridge.WithClock(r.clock))

	callConns.Add(ctx, 1)
	defer callConns.Add(context.WithoutCancel(ctx), -1)
	logger.Info("call connection established")

	go func() {
		for ev := range bridge.Events() {
			if err := rt.Notify(ev); err != nil {
				logger.Debug("bridge event not delivered", log.Error(err))
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for cmd := range rt.Commands() {
			r.handleCallCommand(ctx, rt, bridge, cmd, logger)
		}
	}()

	if err := rt.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Debug("call connection ended", log.Error(err))
	}
	<-done
	bridge.Close()
}

func (r *Router) handleCallCommand(
	ctx context.Context,
	rt *callbridge.WSRuntime,
	bridge *callbridge.Bridge,
	cmd callbridge.Command,
	logger *log.Logger,
) {
	switch cmd.Type {
	case callbridge.CommandJoin:
		target, err := r.flows.VerifyRoom(ctx, cmd.Room)
		if err != nil {
			msg := errors.Message(err)
			if fe, ok := errors.As[*rooms.FlowError](err); ok {
				msg = fe.Message
			}
			_ = rt.Notify(callbridge.Event{Kind: callbridge.EventError, Message: msg})
			return
		}
		if err := bridge.Join(ctx, target.URL); err != nil {
			logger.Info("join failed", log.Room(target.Name), log.Error(err))
		}
	case callbridge.CommandLeave:
		if err := bridge.Leave(ctx); err != nil {
			logger.Info("leave failed", log.Error(err))
		}
	}
}
