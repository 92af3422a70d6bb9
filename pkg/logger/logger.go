package logger

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "requestID"
)

func init() {
	RegisterContextKey(RequestIDKey, "request_id")
}

// LogManager is the logging surface used by the request client and apicall.
type LogManager interface {
	DebugF(format string, args ...any)
	InfoF(format string, args ...any)
	ErrorF(format string, args ...any)

	// ErrorFCtx adds the registered context fields, such as request_id.
	ErrorFCtx(ctx context.Context, format string, args ...any)

	With(keyValues ...any) LogManager

	Sync() error
	SetLogLevel(level string) error
}

// LoggerOptions for custom configuration
type LoggerOptions struct {
	Level        string
	Encoding     string // "json" or "console"
	OutputPaths  []string
	EnableCaller bool
}

// NewLogger builds a zap logger. An unknown Level falls back to info; the
// level can be changed later through SetLogLevel.
func NewLogger(opts LoggerOptions) (LogManager, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	_ = level.UnmarshalText([]byte(opts.Level))

	if opts.Encoding == "" {
		opts.Encoding = "console"
	}
	if len(opts.OutputPaths) == 0 {
		opts.OutputPaths = []string{"stderr"}
	}

	enc := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(time.RFC3339),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if opts.EnableCaller {
		enc.CallerKey = "caller"
	}

	z, err := zap.Config{
		Level:            level,
		Encoding:         opts.Encoding,
		EncoderConfig:    enc,
		OutputPaths:      opts.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}.Build()
	if err != nil {
		return nil, err
	}

	return &logger{Log: z.Sugar(), atomicLevel: level}, nil
}

// FromZap adapts an existing zap logger.
func FromZap(z *zap.Logger) LogManager {
	return &logger{
		Log:         z.Sugar(),
		atomicLevel: zap.NewAtomicLevelAt(z.Level()),
	}
}

// NewNop returns a logger that discards everything.
func NewNop() LogManager {
	return &logger{
		Log:         zap.NewNop().Sugar(),
		atomicLevel: zap.NewAtomicLevel(),
	}
}
