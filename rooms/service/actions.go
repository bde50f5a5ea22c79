package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/internal/utils"
	"github.com/imtaco/interview-lobby/rooms"
	"github.com/imtaco/interview-lobby/rooms/schedule"
)

// withStart copies the records and adds the IST start pair of each scheduled one.
func withStart(list []*rooms.RoomRecord) []*rooms.RoomRecord {
	out := make([]*rooms.RoomRecord, 0, len(list))
	for _, r := range list {
		rec := *r
		if r.NotBefore != nil {
			p := schedule.ToDisplayPair(*r.NotBefore)
			rec.Start = &rooms.StartPair{Date: p.Date, Time: p.Time}
		}
		out = append(out, &rec)
	}
	return out
}

// futureStart validates an optional schedule pair. A half-filled pair is
// invalid; a parsed time must be strictly after now.
func futureStart(date, clock string, required bool, now time.Time) (*int64, error) {
	pair := schedule.Pair{Date: strings.TrimSpace(date), Time: strings.TrimSpace(clock)}
	if pair.Empty() {
		if required {
			return nil, rooms.NewFlowError(rooms.ErrValidation, "Invalid Date/Time",
				"Please select a new date and time.")
		}
		return nil, nil
	}
	if !pair.Complete() {
		return nil, schedule.InvalidDateTime()
	}

	sec, _, err := schedule.ToEpochSeconds(pair.Date, pair.Time)
	if err != nil {
		return nil, err
	}
	if sec <= now.Unix() {
		return nil, rooms.NewFlowError(rooms.ErrValidation, "Must Be Future", "Pick a future time for the meeting.")
	}
	return utils.Ptr(sec), nil
}

func (s *flowSvcImpl) create(ctx context.Context, in *rooms.DetailInput, now time.Time) (*rooms.FlowResult, error) {
	if strings.TrimSpace(in.RoomName) == "" {
		return nil, rooms.NewFlowError(rooms.ErrValidation, "Room Name Required", "Please enter a room name.")
	}
	name, err := s.codec.Normalize(in.RoomName)
	if err != nil {
		return nil, err
	}
	nbf, err := futureStart(in.Date, in.Time, false, now)
	if err != nil {
		return nil, err
	}

	exists, _, err := s.dir.Exists(ctx, name)
	switch {
	case exists:
		return nil, rooms.NewFlowError(rooms.ErrConflict, "Room Already Exists",
			fmt.Sprintf("Room name %q already exists. Please use a different room name.", name))
	case err != nil && !errors.Is(err, rooms.ErrNotFound):
		return nil, rooms.WrapFlowError("Room Creation Failed", err)
	}

	rec, err := s.dir.Create(ctx, name, &rooms.CreateOptions{
		Public:       true,
		Capabilities: rooms.DefaultCapabilities(),
		NotBefore:    nbf,
	})
	if err != nil {
		return nil, rooms.WrapFlowError("Room Creation Failed", err)
	}
	s.logger.Info("room created through flow", log.Room(rec.Name))

	return &rooms.FlowResult{
		Title:   "Room Created Successfully!",
		Message: fmt.Sprintf("Room %q is ready for your meetings.", rec.Name),
		Room:    rec,
		RoomURL: s.roomURL(rec),
	}, nil
}

func (s *flowSvcImpl) reschedule(
	ctx context.Context,
	in *rooms.DetailInput,
	picked *rooms.RoomRecord,
	now time.Time,
) (*rooms.FlowResult, error) {
	if picked == nil {
		return nil, rooms.NewFlowError(rooms.ErrValidation, "Select Room", "Please select a room to reschedule.")
	}
	nbf, err := futureStart(in.Date, in.Time, true, now)
	if err != nil {
		return nil, err
	}

	rec, err := s.dir.Reschedule(ctx, picked.Name, *nbf)
	if err != nil {
		return nil, rooms.WrapFlowError("Reschedule Failed", err)
	}

	return &rooms.FlowResult{
		Title:   "Rescheduled",
		Message: "New start: " + schedule.FormatIST(*nbf),
		Room:    rec,
		RoomURL: s.roomURL(rec),
	}, nil
}

func (s *flowSvcImpl) delete(ctx context.Context, in *rooms.DetailInput, picked *rooms.RoomRecord) (*rooms.FlowResult, error) {
	if picked == nil {
		return nil, rooms.NewFlowError(rooms.ErrValidation, "Select Room", "Please select a room to delete.")
	}
	if in.ConfirmName != picked.Name {
		return nil, rooms.NewFlowError(rooms.ErrConflict, "Confirmation Required",
			"Please enter the exact room name to confirm deletion.")
	}

	if err := s.dir.Delete(ctx, picked.Name); err != nil {
		return nil, rooms.WrapFlowError("Delete Failed", err)
	}

	return &rooms.FlowResult{
		Title:   "Room Deleted",
		Message: fmt.Sprintf("Room %q has been permanently deleted.", picked.Name),
		Room:    picked,
	}, nil
}

func (s *flowSvcImpl) join(ctx context.Context, in *rooms.DetailInput) (*rooms.FlowResult, error) {
	target, err := s.VerifyRoom(ctx, in.RoomName)
	if err != nil {
		return nil, err
	}
	return &rooms.FlowResult{
		Title:   "Room Verified",
		Message: fmt.Sprintf("Room %q found!", target.Name),
		Room:    target.Room,
		RoomURL: target.URL,
	}, nil
}

func (s *flowSvcImpl) VerifyRoom(ctx context.Context, raw string) (*rooms.JoinTarget, error) {
	name, err := s.codec.Normalize(raw)
	if err != nil {
		return nil, err
	}

	exists, rec, err := s.dir.Exists(ctx, name)
	switch {
	case errors.Is(err, rooms.ErrNotFound), err == nil && !exists:
		return nil, rooms.NewFlowError(rooms.ErrNotFound, "Room Not Found",
			fmt.Sprintf("The room %q doesn't exist. Please check the room name and try again.", name))
	case err != nil:
		return nil, rooms.WrapFlowError("Verification Failed", err)
	}

	if rec == nil {
		rec = &rooms.RoomRecord{ID: name, Name: name, IsPublic: true}
	}
	return &rooms.JoinTarget{Name: name, URL: s.roomURL(rec), Room: rec}, nil
}

// roomURL prefers the provider's link and falls back to the canonical one.
func (s *flowSvcImpl) roomURL(rec *rooms.RoomRecord) string {
	if rec.URL != "" {
		return rec.URL
	}
	return s.codec.CanonicalURL(rec.Name)
}
