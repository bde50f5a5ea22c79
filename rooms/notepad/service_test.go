package notepad

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/rooms"
	"github.com/imtaco/interview-lobby/rooms/mocks"
)

const autosaveDelay = 30 * time.Second

// gatedStore holds Save for one owner until release is closed.
type gatedStore struct {
	rooms.NoteStore
	owner   string
	entered chan struct{}
	release chan struct{}
}

func newGatedStore(owner string) *gatedStore {
	return &gatedStore{
		NoteStore: NewMemoryStore(),
		owner:     owner,
		entered:   make(chan struct{}, 1),
		release:   make(chan struct{}),
	}
}

func (g *gatedStore) Save(ctx context.Context, note *rooms.Note) error {
	if note.Owner == g.owner {
		g.entered <- struct{}{}
		<-g.release
	}
	return g.NoteStore.Save(ctx, note)
}

type ServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clockwork.FakeClock
	store rooms.NoteStore
	svc   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC))
	s.store = NewMemoryStore()
	s.svc = s.newService(s.store)
}

func (s *ServiceTestSuite) TearDownTest() {
	s.svc.Close()
}

func (s *ServiceTestSuite) newService(store rooms.NoteStore) *Service {
	return NewService(&Config{
		AutosaveDelay:   autosaveDelay,
		StoreTimeout:    time.Second,
		AutosaveWorkers: 4,
	}, store, s.clock, log.NewNop())
}

// waitArmed blocks until the autosave timer is pending.
func (s *ServiceTestSuite) waitArmed() {
	ctx, cancel := context.WithTimeout(s.ctx, time.Second)
	defer cancel()
	s.Require().NoError(s.clock.BlockUntilContext(ctx, 1))
}

func (s *ServiceTestSuite) stored(owner string) *rooms.Note {
	note, err := s.store.Load(s.ctx, owner)
	s.Require().NoError(err)
	return note
}

func (s *ServiceTestSuite) TestGetDefault() {
	note, err := s.svc.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(DefaultContent, note.Content)
	s.Equal(rooms.ModeCode, note.Mode)
	s.True(note.Saved)
	s.Nil(note.SavedAt)
}

func (s *ServiceTestSuite) TestGetStored() {
	s.Require().NoError(s.store.Save(s.ctx, &rooms.Note{Owner: "alice", Content: "notes", Mode: rooms.ModeNotes}))

	note, err := s.svc.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("notes", note.Content)
	s.Equal(rooms.ModeNotes, note.Mode)
}

func (s *ServiceTestSuite) TestUpdateMarksUnsaved() {
	note, err := s.svc.Update(s.ctx, "alice", "x := 1", "")
	s.Require().NoError(err)
	s.Equal("x := 1", note.Content)
	s.Equal(rooms.ModeCode, note.Mode)
	s.False(note.Saved)
	s.Nil(s.stored("alice"))
}

func (s *ServiceTestSuite) TestAutosaveAfterQuietPeriod() {
	_, err := s.svc.Update(s.ctx, "alice", "draft", rooms.ModeNotes)
	s.Require().NoError(err)
	s.waitArmed()

	s.clock.Advance(autosaveDelay - time.Second)
	s.Nil(s.stored("alice"))

	s.clock.Advance(time.Second)
	s.Eventually(func() bool {
		note := s.stored("alice")
		return note != nil && note.Content == "draft"
	}, time.Second, 10*time.Millisecond)

	s.Eventually(func() bool {
		note, err := s.svc.Get(s.ctx, "alice")
		return err == nil && note.Saved
	}, time.Second, 10*time.Millisecond)
}

func (s *ServiceTestSuite) TestSavePersistsNow() {
	_, err := s.svc.Update(s.ctx, "alice", "draft", "")
	s.Require().NoError(err)

	note, err := s.svc.Save(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(note.Saved)
	s.Require().NotNil(note.SavedAt)
	s.True(s.clock.Now().Equal(*note.SavedAt))

	got := s.stored("alice")
	s.Require().NotNil(got)
	s.Equal("draft", got.Content)

	note, err = s.svc.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(note.Saved)
}

func (s *ServiceTestSuite) TestClearDropsDraftAndStore() {
	_, err := s.svc.Update(s.ctx, "alice", "draft", rooms.ModeNotes)
	s.Require().NoError(err)
	_, err = s.svc.Save(s.ctx, "alice")
	s.Require().NoError(err)

	note, err := s.svc.Clear(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(DefaultContent, note.Content)
	s.Equal(rooms.ModeCode, note.Mode)
	s.Nil(s.stored("alice"))
}

func (s *ServiceTestSuite) TestDownloadFilename() {
	file, err := s.svc.Download(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("code-2025-03-10.txt", file.Filename)
	s.Equal(DefaultContent, file.Content)

	_, err = s.svc.Update(s.ctx, "alice", "agenda", rooms.ModeNotes)
	s.Require().NoError(err)
	file, err = s.svc.Download(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("notes-2025-03-10.txt", file.Filename)
	s.Equal("agenda", file.Content)
}

func (s *ServiceTestSuite) TestRejectsBadInput() {
	_, err := s.svc.Update(s.ctx, "alice", "x", rooms.NoteMode("slides"))
	s.True(errors.Is(err, rooms.ErrValidation))

	_, err = s.svc.Get(s.ctx, "  ")
	s.True(errors.Is(err, rooms.ErrValidation))
}

func (s *ServiceTestSuite) TestSaveFailureKeepsDraftUnsaved() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockNoteStore(ctrl)
	svc := s.newService(store)
	defer svc.Close()

	store.EXPECT().Load(gomock.Any(), "alice").Return(nil, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New(rooms.ErrTransport, "redis down"))

	_, err := svc.Update(s.ctx, "alice", "draft", "")
	s.Require().NoError(err)

	_, err = svc.Save(s.ctx, "alice")
	s.Require().Error(err)
	s.True(errors.Is(err, rooms.ErrTransport))

	note, err := svc.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.False(note.Saved)
	s.Equal("draft", note.Content)
}

func (s *ServiceTestSuite) TestClearDuringAutosaveWins() {
	store := newGatedStore("alice")
	svc := s.newService(store)
	defer svc.Close()

	_, err := svc.Update(s.ctx, "alice", "draft", "")
	s.Require().NoError(err)
	s.waitArmed()
	s.clock.Advance(autosaveDelay)

	select {
	case <-store.entered:
	case <-time.After(time.Second):
		s.FailNow("autosave did not start")
	}

	cleared := make(chan error, 1)
	go func() {
		_, err := svc.Clear(s.ctx, "alice")
		cleared <- err
	}()

	select {
	case <-cleared:
		s.FailNow("clear finished while a save was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.release)
	select {
	case err := <-cleared:
		s.Require().NoError(err)
	case <-time.After(time.Second):
		s.FailNow("clear did not finish")
	}

	stored, err := store.Load(s.ctx, "alice")
	s.Require().NoError(err)
	s.Nil(stored)

	note, err := svc.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(DefaultContent, note.Content)
}

func (s *ServiceTestSuite) TestSlowOwnerDoesNotStallAutosave() {
	store := newGatedStore("slow")
	svc := s.newService(store)
	defer svc.Close()
	defer close(store.release)

	_, err := svc.Update(s.ctx, "slow", "a", "")
	s.Require().NoError(err)
	_, err = svc.Update(s.ctx, "fast", "b", "")
	s.Require().NoError(err)
	s.waitArmed()
	s.clock.Advance(autosaveDelay)

	select {
	case <-store.entered:
	case <-time.After(time.Second):
		s.FailNow("autosave did not start")
	}
	s.Eventually(func() bool {
		note, err := store.Load(s.ctx, "fast")
		return err == nil && note != nil && note.Content == "b"
	}, time.Second, 10*time.Millisecond)
}

func (s *ServiceTestSuite) TestLoadGivesUpAfterStoreTimeout() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockNoteStore(ctrl)
	svc := NewService(&Config{
		AutosaveDelay: autosaveDelay,
		StoreTimeout:  20 * time.Millisecond,
	}, store, s.clock, log.NewNop())
	defer svc.Close()

	store.EXPECT().Load(gomock.Any(), "alice").DoAndReturn(
		func(ctx context.Context, _ string) (*rooms.Note, error) {
			<-ctx.Done()
			return nil, errors.Wrap(rooms.ErrTransport, ctx.Err(), "load note")
		})

	_, err := svc.Get(s.ctx, "alice")
	s.Require().Error(err)
	s.True(errors.Is(err, rooms.ErrTransport))
}
