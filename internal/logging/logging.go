package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type requestIDKey struct{}

// Setup configures the global zerolog logger. Development uses the console
// writer; every other environment logs JSON to stdout.
func Setup(level, env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides request-scoped logging for services.
type Logger struct {
	zl zerolog.Logger
}

// FromContext returns a logger tagged with the request id found in ctx.
func FromContext(ctx context.Context) *Logger {
	rid := RequestID(ctx)
	if rid == "" {
		rid = "unknown"
	}
	return &Logger{zl: log.Logger.With().Str("request_id", rid).Logger()}
}

func (l *Logger) LogError(operation string, err error) {
	l.zl.Error().Str("operation", operation).Err(err).Send()
}

func (l *Logger) LogErrorf(operation string, format string, args ...any) {
	l.zl.Error().Str("operation", operation).Msgf(format, args...)
}

func (l *Logger) LogInfo(operation string, message string) {
	l.zl.Info().Str("operation", operation).Msg(message)
}

func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.zl.Info().Str("operation", operation).Msgf(format, args...)
}

func (l *Logger) LogWarn(operation string, message string) {
	l.zl.Warn().Str("operation", operation).Msg(message)
}

func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.zl.Warn().Str("operation", operation).Msgf(format, args...)
}
