package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/rooms"
	"github.com/imtaco/interview-lobby/rooms/roomname"
)

const (
	defaultSessionTTL  = 30 * time.Minute
	defaultMaxSessions = 1024
)

type flowSvcImpl struct {
	dir      rooms.Directory
	codec    *roomname.Codec
	gate     passwordGate
	registry *expirable.LRU[string, *flow]
	clock    clockwork.Clock
	logger   *log.Logger
}

func NewFlowService(
	cfg *Config,
	dir rooms.Directory,
	codec *roomname.Codec,
	clock clockwork.Clock,
	logger *log.Logger,
) rooms.FlowService {
	if logger == nil {
		panic("logger is required")
	}
	if dir == nil || codec == nil {
		panic("directory and codec are required")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	size := cfg.MaxSessions
	if size <= 0 {
		size = defaultMaxSessions
	}
	if cfg.AdminPassword == "" {
		logger.Warn("admin password is not configured, management flows will fail")
	}

	onEvict := func(id string, f *flow) {
		f.close()
		flowsActive.Add(context.Background(), -1)
		logger.Debug("flow released", log.Flow(id))
	}

	return &flowSvcImpl{
		dir:      dir,
		codec:    codec,
		gate:     passwordGate{secret: cfg.AdminPassword},
		registry: expirable.NewLRU[string, *flow](size, onEvict, ttl),
		clock:    clock,
		logger:   logger,
	}
}

func (s *flowSvcImpl) OpenFlow(ctx context.Context, kind rooms.FlowKind) (*rooms.FlowState, error) {
	spec, ok := flowSpecs[kind]
	if !ok {
		return nil, rooms.NewFlowError(rooms.ErrValidation, "Unknown Flow", "Unsupported flow kind "+string(kind)+".")
	}

	f := newFlow(uuid.NewString(), kind, spec)
	s.registry.Add(f.id, f)
	flowsOpened.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(kind))))
	flowsActive.Add(ctx, 1)
	s.logger.Debug("flow opened", log.Flow(f.id), log.String("kind", string(kind)))

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == rooms.StepDetails {
		s.enterDetailsLocked(ctx, f)
	}
	return f.snapshotLocked(s.clock.Now()), nil
}

func (s *flowSvcImpl) GetFlow(_ context.Context, id string) (*rooms.FlowState, error) {
	f, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked(s.clock.Now()), nil
}

func (s *flowSvcImpl) SubmitPassword(ctx context.Context, id, password string) (*rooms.FlowState, error) {
	f, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != rooms.StepPassword {
		return nil, invalidStep(f.step)
	}

	if err := s.gate.check(password); err != nil {
		code, _ := errors.CodeOf(err)
		passwordRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", string(code))))
		s.logger.Info("password rejected", log.Flow(id), log.String("reason", string(code)))
		return nil, err
	}

	f.advanceLocked()
	if f.step == rooms.StepDetails {
		s.enterDetailsLocked(ctx, f)
	}
	return f.snapshotLocked(s.clock.Now()), nil
}

func (s *flowSvcImpl) ChooseAction(ctx context.Context, id string, action rooms.Action) (*rooms.FlowState, error) {
	f, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != rooms.StepAction {
		return nil, invalidStep(f.step)
	}
	if !f.allows(action) {
		return nil, rooms.NewFlowError(rooms.ErrValidation, "Select Action",
			"Please choose create, reschedule or delete.")
	}

	f.action = action
	f.advanceLocked()
	s.enterDetailsLocked(ctx, f)
	return f.snapshotLocked(s.clock.Now()), nil
}

// enterDetailsLocked starts the room list fetch for actions that pick from
// existing rooms. The fetch outlives the request that triggered it.
func (s *flowSvcImpl) enterDetailsLocked(ctx context.Context, f *flow) {
	if !needsRoomList(f.action) {
		return
	}

	f.fetching = true
	f.notice = nil
	done := make(chan struct{})
	f.fetched = done
	epoch := f.epoch
	fetchCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(done)
		list, err := s.dir.List(fetchCtx)

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.epoch != epoch {
			staleResults.Add(fetchCtx, 1)
			return
		}
		f.fetching = false
		if err != nil {
			roomFetchFailures.Add(fetchCtx, 1)
			s.logger.Warn("failed to load rooms", log.Flow(f.id), log.Error(err))
			f.notice = &rooms.Notice{Title: "Failed to Load Rooms", Message: errors.Message(err)}
			return
		}
		f.rooms = withStart(list)
	}()
}

func (s *flowSvcImpl) AwaitRooms(ctx context.Context, id string) (*rooms.FlowState, error) {
	f, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	done := f.fetched
	f.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, errors.Wrap(rooms.ErrTransport, ctx.Err(), "waiting for rooms")
		}
	}
	return s.GetFlow(ctx, id)
}

func (s *flowSvcImpl) SubmitDetails(ctx context.Context, id string, input *rooms.DetailInput) (*rooms.FlowResult, error) {
	f, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if input == nil {
		input = &rooms.DetailInput{}
	}

	f.mu.Lock()
	switch {
	case f.step != rooms.StepDetails:
		f.mu.Unlock()
		return nil, invalidStep(f.step)
	case f.busy:
		f.mu.Unlock()
		return nil, rooms.NewFlowError(rooms.ErrBusy, "Please Wait", "A request for this flow is already in progress.")
	case f.fetching:
		f.mu.Unlock()
		return nil, rooms.NewFlowError(rooms.ErrBusy, "Please Wait", "Rooms are still loading.")
	}
	f.busy = true
	epoch := f.epoch
	action := f.action
	now := s.clock.Now()
	var picked *rooms.RoomRecord
	if needsRoomList(action) {
		picked = f.findRoomLocked(strings.TrimSpace(input.Room), now)
	}
	f.mu.Unlock()

	var result *rooms.FlowResult
	switch action {
	case rooms.ActionCreate:
		result, err = s.create(ctx, input, now)
	case rooms.ActionReschedule:
		result, err = s.reschedule(ctx, input, picked, now)
	case rooms.ActionDelete:
		result, err = s.delete(ctx, input, picked)
	case rooms.ActionJoin:
		result, err = s.join(ctx, input)
	default:
		err = rooms.NewFlowError(rooms.ErrInvalidStep, "Select Action", "Please choose an action first.")
	}

	outcome := "ok"
	if code, ok := errors.CodeOf(err); ok {
		outcome = string(code)
	}
	actionOutcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", string(action)),
		attribute.String("outcome", outcome)))

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.epoch != epoch {
		staleResults.Add(ctx, 1)
		s.logger.Info("discarding result of closed flow", log.Flow(id), log.String("action", string(action)))
		return nil, rooms.NewFlowError(rooms.ErrFlowNotFound, "Flow Closed", "This flow was closed before the request finished.")
	}
	f.busy = false
	if err != nil {
		s.logger.Debug("detail submission failed", log.Flow(id), log.String("action", string(action)), log.Error(err))
		return nil, err
	}

	f.step = rooms.StepCompleted
	f.rooms = nil
	f.notice = nil
	result.State = f.snapshotLocked(now)
	s.logger.Info("flow completed", log.Flow(id), log.String("action", string(action)))
	return result, nil
}

func (s *flowSvcImpl) CloseFlow(_ context.Context, id string) error {
	if !s.registry.Remove(id) {
		return flowNotFound()
	}
	return nil
}

func (s *flowSvcImpl) CheckPassword(password string) error {
	return s.gate.check(password)
}

// lookup returns a live flow and pushes its expiry out.
func (s *flowSvcImpl) lookup(id string) (*flow, error) {
	f, ok := s.registry.Get(id)
	if !ok {
		return nil, flowNotFound()
	}
	s.registry.Add(id, f)
	return f, nil
}

func flowNotFound() error {
	return rooms.NewFlowError(rooms.ErrFlowNotFound, "Session Expired", "This flow no longer exists. Please start again.")
}

func invalidStep(step rooms.Step) error {
	return rooms.NewFlowError(rooms.ErrInvalidStep, "Invalid Step",
		"This request is not allowed while the flow is at step "+string(step)+".")
}
