package log

import (
	"encoding/json"
	//nolint:depguard
	"log"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Fatal is for start-up failures before a Logger exists.
func Fatal(v ...any) {
	log.Fatal(v...)
}

// Logger is a zap logger that can derive named child loggers per module.
type Logger struct {
	*zap.Logger
	names  []string
	derive func(names []string) *zap.Logger
}

// Module returns a child logger named after the dotted module path.
func (l *Logger) Module(name string) *Logger {
	names := append(append([]string{}, l.names...), name)
	return &Logger{
		Logger: l.derive(names),
		names:  names,
		derive: l.derive,
	}
}

// With returns a logger carrying fields while keeping the module hierarchy.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{
		Logger: l.Logger.With(fields...),
		names:  l.names,
		derive: l.derive,
	}
}

// NewLogger builds the console logger, or a zap.Config logger when configFile
// points at a JSON zap config.
func NewLogger(configFile string) (*Logger, error) {
	if configFile == "" {
		return newConsoleLogger(), nil
	}
	return newFileConfigLogger(configFile)
}

func newFileConfigLogger(configFile string) (*Logger, error) {
	bs, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if err := json.Unmarshal(bs, &cfg); err != nil {
		return nil, err
	}

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger: base.Named("main"),
		derive: func(names []string) *zap.Logger {
			return base.Named(strings.Join(names, "."))
		},
	}, nil
}

func consoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName: func(name string, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + name + "]")
		},
	})
}

func newConsoleLogger() *Logger {
	encoder := consoleEncoder()
	writer := zapcore.AddSync(os.Stdout)

	build := func(level zapcore.Level) *zap.Logger {
		core := zapcore.NewCore(encoder, writer, zap.NewAtomicLevelAt(level))
		return zap.New(core, zap.AddStacktrace(zapcore.FatalLevel))
	}

	rootLevel, ok := levelFromEnv(levelEnvKey)
	if !ok {
		rootLevel = zapcore.InfoLevel
	}

	return &Logger{
		Logger: build(rootLevel).Named("main"),
		derive: func(names []string) *zap.Logger {
			lv := moduleLevel(names)
			logger := build(lv).Named(strings.Join(names, "."))
			logger.Debug("module logger ready", zap.Stringer("level", lv))
			return logger
		},
	}
}

// NewTest routes output through t.Log.
func NewTest(t *testing.T) *Logger {
	logger := zaptest.NewLogger(t)
	return &Logger{
		Logger: logger,
		derive: func(names []string) *zap.Logger {
			return logger.Named(strings.Join(names, "."))
		},
	}
}

func NewNop() *Logger {
	logger := zap.NewNop()
	return &Logger{
		Logger: logger,
		derive: func(_ []string) *zap.Logger {
			return logger
		},
	}
}
