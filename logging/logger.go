package logging

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerOnce sync.Once
	loggerMu   sync.RWMutex
	baseLogger *zap.Logger
)

type ctxLoggerKey struct{}

// New builds a zap logger writing to stdout. json selects the JSON encoder,
// debug lowers the level to debug.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "message",

			LevelKey:    "severity",
			EncodeLevel: encodeSeverity,

			TimeKey:    "timestamp",
			EncodeTime: encodeTimeMicros,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build(zap.AddCaller())
}

// Configure replaces the process-wide logger.
func Configure(json bool, debug bool) error {
	logger, err := New(json, debug)
	if err != nil {
		return err
	}
	loggerOnce.Do(func() {})
	loggerMu.Lock()
	baseLogger = logger
	loggerMu.Unlock()
	return nil
}

// Logger returns the process-wide logger, building a console logger on first use.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		logger, err := New(false, false)
		if err != nil {
			logger = zap.NewNop()
		}
		loggerMu.Lock()
		baseLogger = logger
		loggerMu.Unlock()
	})
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return baseLogger
}

// SetLogger swaps the process-wide logger and returns a func restoring the previous one.
func SetLogger(logger *zap.Logger) func() {
	previous := Logger()
	loggerMu.Lock()
	baseLogger = logger
	loggerMu.Unlock()
	return func() {
		loggerMu.Lock()
		baseLogger = previous
		loggerMu.Unlock()
	}
}

// Sync flushes buffered log entries. Call during shutdown.
func Sync() error {
	return Logger().Sync()
}

// WithLogger stores a request-scoped logger in ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// FromContext returns the request-scoped logger if present, otherwise the process-wide one.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLoggerKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return Logger()
}

func encodeTimeMicros(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000000Z07:00"))
}

// encodeSeverity maps zap levels to Cloud Logging severity names.
func encodeSeverity(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var severity string
	switch level {
	case zapcore.DebugLevel:
		severity = "DEBUG"
	case zapcore.InfoLevel:
		severity = "INFO"
	case zapcore.WarnLevel:
		severity = "WARNING"
	case zapcore.ErrorLevel:
		severity = "ERROR"
	case zapcore.DPanicLevel:
		severity = "CRITICAL"
	case zapcore.PanicLevel:
		severity = "ALERT"
	case zapcore.FatalLevel:
		severity = "EMERGENCY"
	default:
		severity = "DEFAULT"
	}
	enc.AppendString(severity)
}
