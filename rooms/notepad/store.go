package notepad

import (
	"context"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/internal/redis"
	"github.com/imtaco/interview-lobby/rooms"
)

const (
	fieldContent = "content"
	fieldMode    = "mode"
	fieldSavedAt = "saved_at"
)

// NewStore builds the store selected by cfg.Backend. client may be nil for
// the memory backend.
func NewStore(cfg *Config, client goredis.UniversalClient, logger *log.Logger) (rooms.NoteStore, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		if client == nil {
			return nil, errors.New(rooms.ErrConfiguration, "redis backend needs a redis client")
		}
		forever := redis.NewForever(client, 0, 0, logger.Module("redis"))
		return NewRedisStore(forever, cfg.KeyPrefix, cfg.TTL, logger), nil
	default:
		return nil, errors.Newf(rooms.ErrConfiguration, "unknown notepad backend %q", cfg.Backend)
	}
}

type memoryStore struct {
	mu    sync.RWMutex
	notes map[string]rooms.Note
}

func NewMemoryStore() rooms.NoteStore {
	return &memoryStore{notes: make(map[string]rooms.Note)}
}

func (m *memoryStore) Load(_ context.Context, owner string) (*rooms.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.notes[owner]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (m *memoryStore) Save(_ context.Context, note *rooms.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[note.Owner] = *note
	return nil
}

func (m *memoryStore) Clear(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.notes, owner)
	return nil
}

// redisStore keeps one hash per owner. Writes are last-write-wins.
type redisStore struct {
	forever redis.Forever
	prefix  string
	ttl     time.Duration
	logger  *log.Logger
}

func NewRedisStore(forever redis.Forever, prefix string, ttl time.Duration, logger *log.Logger) rooms.NoteStore {
	if logger == nil {
		panic("logger is required")
	}
	return &redisStore{
		forever: forever,
		prefix:  prefix,
		ttl:     ttl,
		logger:  logger,
	}
}

func (r *redisStore) key(owner string) string {
	return r.prefix + owner
}

func (r *redisStore) Load(ctx context.Context, owner string) (*rooms.Note, error) {
	vals, err := r.forever.HGetAll(ctx, r.key(owner))
	if err != nil && err != goredis.Nil {
		return nil, errors.Wrapf(rooms.ErrTransport, err, "load note %s", owner)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	note := &rooms.Note{
		Owner:   owner,
		Content: vals[fieldContent],
		Mode:    rooms.NoteMode(vals[fieldMode]),
		Saved:   true,
	}
	if !note.Mode.Valid() {
		note.Mode = rooms.ModeCode
	}
	if raw := vals[fieldSavedAt]; raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			note.SavedAt = &ts
		} else {
			r.logger.Warn("bad saved_at on note", log.String("owner", owner), log.Error(err))
		}
	}
	return note, nil
}

func (r *redisStore) Save(ctx context.Context, note *rooms.Note) error {
	key := r.key(note.Owner)
	values := []any{
		fieldContent, note.Content,
		fieldMode, string(note.Mode),
	}
	if note.SavedAt != nil {
		values = append(values, fieldSavedAt, note.SavedAt.UTC().Format(time.RFC3339Nano))
	}
	if err := r.forever.HSet(ctx, key, values...); err != nil {
		return errors.Wrapf(rooms.ErrTransport, err, "save note %s", note.Owner)
	}
	if r.ttl > 0 {
		if err := r.forever.Expire(ctx, key, r.ttl); err != nil {
			return errors.Wrapf(rooms.ErrTransport, err, "expire note %s", note.Owner)
		}
	}
	return nil
}

func (r *redisStore) Clear(ctx context.Context, owner string) error {
	if err := r.forever.Del(ctx, r.key(owner)); err != nil {
		return errors.Wrapf(rooms.ErrTransport, err, "clear note %s", owner)
	}
	return nil
}
