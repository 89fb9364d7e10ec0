package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelCritical = slog.Level(12)
)

var levelsByName = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
	// Writer adapts the logger to libraries that print preformatted lines.
	Writer(component string, level slog.Level) *LineWriter
}

// Options selects the handler built by New.
type Options struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// OptionsFromEnv reads LOG_LEVEL and LOG_FORMAT. Without LOG_LEVEL the level
// is debug when ENV=development and info otherwise. The format defaults to json.
func OptionsFromEnv() Options {
	level := slog.LevelInfo
	if normalizeValue(os.Getenv("ENV")) == "development" {
		level = slog.LevelDebug
	}
	if parsed, ok := levelsByName[normalizeValue(os.Getenv("LOG_LEVEL"))]; ok {
		level = parsed
	}

	format := "json"
	if normalizeValue(os.Getenv("LOG_FORMAT")) == "text" {
		format = "text"
	}
	return Options{Level: level, Format: format}
}

func NewFromEnv() Logger {
	return New(os.Stdout, OptionsFromEnv())
}

func New(output io.Writer, opts Options) Logger {
	handlerOptions := &slog.HandlerOptions{
		Level:       opts.Level,
		ReplaceAttr: renameCritical,
	}

	var handler slog.Handler
	if normalizeValue(opts.Format) == "json" {
		handler = slog.NewJSONHandler(output, handlerOptions)
	} else {
		handler = slog.NewTextHandler(output, handlerOptions)
	}
	return &slogLogger{base: slog.New(handler)}
}

// Discard returns a logger that drops every record.
func Discard() Logger {
	return New(io.Discard, Options{Level: LevelCritical + 1, Format: "text"})
}

type slogLogger struct {
	base *slog.Logger
}

func (l *slogLogger) Debug(message string, args ...any) {
	l.base.Debug(message, args...)
}

func (l *slogLogger) Info(message string, args ...any) {
	l.base.Info(message, args...)
}

func (l *slogLogger) Warn(message string, args ...any) {
	l.base.Warn(message, args...)
}

func (l *slogLogger) Error(message string, args ...any) {
	l.base.Error(message, args...)
}

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

// BusinessError records a failure caused by the caller, such as a rejected
// input or a missing row.
func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	l.logError(slog.LevelWarn, message, err, args)
}

// InternalError records a failure of the service itself.
func (l *slogLogger) InternalError(message string, err error, args ...any) {
	l.logError(slog.LevelError, message, err, args)
}

func (l *slogLogger) logError(level slog.Level, message string, err error, args []any) {
	if err == nil {
		return
	}
	l.base.Log(context.Background(), level, message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func (l *slogLogger) Writer(component string, level slog.Level) *LineWriter {
	return &LineWriter{base: l.base.With("component", component), level: level}
}

// LineWriter turns printed lines into records at a fixed level. It serves as
// a gorm logger writer (Printf) and a chi request logger (Print).
type LineWriter struct {
	base  *slog.Logger
	level slog.Level
}

func (w *LineWriter) Printf(format string, args ...any) {
	w.emit(fmt.Sprintf(format, args...))
}

func (w *LineWriter) Print(args ...any) {
	w.emit(fmt.Sprint(args...))
}

func (w *LineWriter) emit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	w.base.Log(context.Background(), w.level, line)
}

func normalizeValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func renameCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
