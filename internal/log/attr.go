package log

import (
	"time"

	"go.uber.org/zap"
)

// Field aliases zap.Field so callers do not import zap directly.
type Field = zap.Field

func Bool(key string, val bool) Field { return zap.Bool(key, val) }

func Int(key string, val int) Field { return zap.Int(key, val) }

func Int64(key string, val int64) Field { return zap.Int64(key, val) }

func Float64(key string, val float64) Field { return zap.Float64(key, val) }

func String(key string, val string) Field { return zap.String(key, val) }

func Strings(key string, val []string) Field { return zap.Strings(key, val) }

func Error(err error) Field { return zap.Error(err) }

func Any(key string, val any) Field { return zap.Any(key, val) }

func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }

func Time(key string, val time.Time) Field { return zap.Time(key, val) }

// Room tags a log line with a room name.
func Room(name string) Field { return zap.String("room", name) }

// Flow tags a log line with a lifecycle flow id.
func Flow(id string) Field { return zap.String("flowId", id) }
