package notepad

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/internal/scheduler"
	"github.com/imtaco/interview-lobby/rooms"
)

const DefaultContent = "// You can write code or take notes here"

const (
	triggerManual   = "manual"
	triggerAutosave = "autosave"
)

type draft struct {
	content string
	mode    rooms.NoteMode
	saved   bool
	savedAt *time.Time
	// version increases on every edit so a save only marks the draft it wrote.
	version uint64
}

func (d *draft) note(owner string) *rooms.Note {
	return &rooms.Note{
		Owner:   owner,
		Content: d.content,
		Mode:    d.mode,
		Saved:   d.saved,
		SavedAt: d.savedAt,
	}
}

// Service holds one in-memory draft per owner and writes it to the store on
// an explicit save or once edits have been quiet for the autosave delay.
type Service struct {
	cfg    *Config
	store  rooms.NoteStore
	clock  clockwork.Clock
	logger *log.Logger
	sched  *scheduler.KeyedScheduler

	mu     sync.Mutex
	drafts map[string]*draft
	// writers serializes store access per owner; taken before mu.
	writers map[string]*sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

var _ rooms.NotepadService = (*Service)(nil)

func NewService(cfg *Config, store rooms.NoteStore, clock clockwork.Clock, logger *log.Logger) *Service {
	if logger == nil {
		panic("logger is required")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		cfg:    cfg,
		store:  store,
		clock:  clock,
		logger: logger,
		sched:  scheduler.NewKeyedScheduler(logger.Module("autosave"), scheduler.WithClock(clock)),
		drafts:  make(map[string]*draft),
		writers: make(map[string]*sync.Mutex),
		ctx:     ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.autosaveLoop()
	return s
}

// Close stops autosaving. Pending drafts are not flushed.
func (s *Service) Close() {
	s.sched.Shutdown()
	s.cancel()
	<-s.done
}

// autosaveLoop hands each fired owner to a worker so a slow store never
// holds up the scheduler.
func (s *Service) autosaveLoop() {
	defer close(s.done)

	var g errgroup.Group
	if s.cfg.AutosaveWorkers > 0 {
		g.SetLimit(s.cfg.AutosaveWorkers)
	}
	for owner := range s.sched.Chan() {
		g.Go(func() error {
			if _, err := s.persist(s.ctx, owner, triggerAutosave); err != nil {
				s.logger.Warn("autosave failed", log.String("owner", owner), log.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) Get(ctx context.Context, owner string) (*rooms.Note, error) {
	if err := validOwner(owner); err != nil {
		return nil, err
	}
	d, err := s.draftFor(ctx, owner)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return d.note(owner), nil
}

func (s *Service) Update(ctx context.Context, owner, content string, mode rooms.NoteMode) (*rooms.Note, error) {
	if err := validOwner(owner); err != nil {
		return nil, err
	}
	if mode != "" && !mode.Valid() {
		return nil, rooms.NewFlowError(rooms.ErrValidation, "Invalid Mode", "Mode must be code or notes.")
	}
	d, err := s.draftFor(ctx, owner)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	d.content = content
	if mode != "" {
		d.mode = mode
	}
	d.saved = false
	d.version++
	note := d.note(owner)
	s.mu.Unlock()

	s.sched.Reset(owner, s.cfg.AutosaveDelay)
	return note, nil
}

func (s *Service) Save(ctx context.Context, owner string) (*rooms.Note, error) {
	if err := validOwner(owner); err != nil {
		return nil, err
	}
	s.sched.Cancel(owner)
	return s.persist(ctx, owner, triggerManual)
}

func (s *Service) Clear(ctx context.Context, owner string) (*rooms.Note, error) {
	if err := validOwner(owner); err != nil {
		return nil, err
	}
	s.sched.Cancel(owner)

	w := s.writer(owner)
	w.Lock()
	defer w.Unlock()

	s.mu.Lock()
	if _, ok := s.drafts[owner]; ok {
		delete(s.drafts, owner)
		draftsOpen.Add(ctx, -1)
	}
	s.mu.Unlock()

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.store.Clear(storeCtx, owner); err != nil {
		return nil, rooms.WrapFlowError("Clear Failed", err)
	}
	notesCleared.Add(ctx, 1)
	s.logger.Info("note cleared", log.String("owner", owner))

	d, err := s.seed(ctx, owner)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return d.note(owner), nil
}

func (s *Service) Download(ctx context.Context, owner string) (*rooms.NoteFile, error) {
	note, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &rooms.NoteFile{
		Filename: fmt.Sprintf("%s-%s.txt", note.Mode, s.clock.Now().Format(time.DateOnly)),
		Content:  note.Content,
	}, nil
}

// draftFor returns the owner's draft, seeding it from the store or the
// default note the first time.
func (s *Service) draftFor(ctx context.Context, owner string) (*draft, error) {
	if d := s.lookup(owner); d != nil {
		return d, nil
	}
	w := s.writer(owner)
	w.Lock()
	defer w.Unlock()
	return s.seed(ctx, owner)
}

// seed must be called with the owner's writer held.
func (s *Service) seed(ctx context.Context, owner string) (*draft, error) {
	if d := s.lookup(owner); d != nil {
		return d, nil
	}

	loadCtx, cancel := s.storeContext(ctx)
	defer cancel()
	stored, err := s.store.Load(loadCtx, owner)
	if err != nil {
		return nil, rooms.WrapFlowError("Load Failed", err)
	}
	d := &draft{content: DefaultContent, mode: rooms.ModeCode, saved: true}
	if stored != nil {
		d = &draft{
			content: stored.Content,
			mode:    stored.Mode,
			saved:   true,
			savedAt: stored.SavedAt,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[owner] = d
	draftsOpen.Add(ctx, 1)
	return d, nil
}

func (s *Service) lookup(owner string) *draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[owner]
}

func (s *Service) writer(owner string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.writers[owner]
	if !ok {
		w = &sync.Mutex{}
		s.writers[owner] = w
	}
	return w
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.StoreTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.StoreTimeout)
	}
	return context.WithCancel(ctx)
}

// persist snapshots and writes the draft under the owner's writer, so a
// clear can never be overwritten by an older snapshot. An autosave for an
// owner without a draft writes nothing.
func (s *Service) persist(ctx context.Context, owner, trigger string) (*rooms.Note, error) {
	w := s.writer(owner)
	w.Lock()
	defer w.Unlock()

	d := s.lookup(owner)
	if d == nil {
		if trigger == triggerAutosave {
			return nil, nil
		}
		var err error
		if d, err = s.seed(ctx, owner); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now().UTC()
	s.mu.Lock()
	note := d.note(owner)
	note.SavedAt = &now
	version := d.version
	s.mu.Unlock()

	saveCtx, cancel := s.storeContext(ctx)
	defer cancel()
	attrs := metric.WithAttributes(attribute.String("trigger", trigger))
	if err := s.store.Save(saveCtx, note); err != nil {
		saveFailures.Add(ctx, 1, attrs)
		return nil, rooms.WrapFlowError("Save Failed", err)
	}
	notesSaved.Add(ctx, 1, attrs)

	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.drafts[owner]; ok && cur == d && d.version == version {
		d.saved = true
		d.savedAt = &now
	}
	note.Saved = true
	s.logger.Debug("note saved", log.String("owner", owner), log.String("trigger", trigger))
	return note, nil
}

func validOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return rooms.NewFlowError(rooms.ErrValidation, "Owner Required", "A notepad owner is required.")
	}
	return nil
}
