package service

import (
	"slices"
	"sync"
	"time"

	"github.com/imtaco/interview-lobby/rooms"
)

// flowSpec describes one flow kind: the steps before completion and the
// actions the details step may run.
type flowSpec struct {
	steps   []rooms.Step
	actions []rooms.Action
}

var flowSpecs = map[rooms.FlowKind]flowSpec{
	rooms.FlowManage: {
		steps:   []rooms.Step{rooms.StepPassword, rooms.StepAction, rooms.StepDetails},
		actions: []rooms.Action{rooms.ActionCreate, rooms.ActionReschedule, rooms.ActionDelete},
	},
	rooms.FlowCreate: {
		steps:   []rooms.Step{rooms.StepPassword, rooms.StepDetails},
		actions: []rooms.Action{rooms.ActionCreate},
	},
	rooms.FlowReschedule: {
		steps:   []rooms.Step{rooms.StepPassword, rooms.StepDetails},
		actions: []rooms.Action{rooms.ActionReschedule},
	},
	rooms.FlowJoin: {
		steps:   []rooms.Step{rooms.StepDetails},
		actions: []rooms.Action{rooms.ActionJoin},
	},
}

func needsRoomList(a rooms.Action) bool {
	return a == rooms.ActionReschedule || a == rooms.ActionDelete
}

// flow is one lifecycle session. All fields are guarded by mu. epoch changes
// whenever the flow is reset so late remote results can be recognised.
type flow struct {
	mu sync.Mutex

	id   string
	kind rooms.FlowKind
	spec flowSpec

	step     rooms.Step
	action   rooms.Action
	busy     bool
	fetching bool
	fetched  chan struct{}
	rooms    []*rooms.RoomRecord
	notice   *rooms.Notice
	epoch    uint64
}

func newFlow(id string, kind rooms.FlowKind, spec flowSpec) *flow {
	f := &flow{id: id, kind: kind, spec: spec}
	f.resetLocked()
	return f
}

// resetLocked returns the flow to its first step and drops transient state.
func (f *flow) resetLocked() {
	f.step = f.spec.steps[0]
	f.action = ""
	if len(f.spec.actions) == 1 {
		f.action = f.spec.actions[0]
	}
	f.busy = false
	f.fetching = false
	f.fetched = nil
	f.rooms = nil
	f.notice = nil
	f.epoch++
}

func (f *flow) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == rooms.StepClosed {
		return
	}
	f.resetLocked()
	f.step = rooms.StepClosed
}

// advanceLocked moves to the step after the current one.
func (f *flow) advanceLocked() {
	i := slices.Index(f.spec.steps, f.step)
	if i >= 0 && i+1 < len(f.spec.steps) {
		f.step = f.spec.steps[i+1]
	}
}

func (f *flow) allows(a rooms.Action) bool {
	return slices.Contains(f.spec.actions, a)
}

func (f *flow) findRoomLocked(name string, now time.Time) *rooms.RoomRecord {
	for _, r := range f.visibleRoomsLocked(now) {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// visibleRoomsLocked filters the fetched list to what the current action may
// pick: reschedule only offers rooms that still have a future start.
func (f *flow) visibleRoomsLocked(now time.Time) []*rooms.RoomRecord {
	if f.action != rooms.ActionReschedule {
		return f.rooms
	}
	out := make([]*rooms.RoomRecord, 0, len(f.rooms))
	for _, r := range f.rooms {
		if r.ScheduledAfter(now) {
			out = append(out, r)
		}
	}
	return out
}

func (f *flow) snapshotLocked(now time.Time) *rooms.FlowState {
	return &rooms.FlowState{
		ID:            f.id,
		Kind:          f.kind,
		Step:          f.step,
		Action:        f.action,
		Actions:       slices.Clone(f.spec.actions),
		Busy:          f.busy,
		FetchingRooms: f.fetching,
		Rooms:         slices.Clone(f.visibleRoomsLocked(now)),
		Notice:        f.notice,
	}
}
