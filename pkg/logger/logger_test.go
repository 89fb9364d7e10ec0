package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsFromEnv(t *testing.T) {
	cases := []struct {
		name   string
		env    string
		level  string
		format string
		want   Options
	}{
		{name: "production defaults", env: "production", want: Options{Level: slog.LevelInfo, Format: "json"}},
		{name: "development defaults to debug", env: "development", want: Options{Level: slog.LevelDebug, Format: "json"}},
		{name: "explicit level wins", env: "development", level: " WARNING ", format: "TEXT", want: Options{Level: slog.LevelWarn, Format: "text"}},
		{name: "fatal is critical", level: "fatal", want: Options{Level: LevelCritical, Format: "json"}},
		{name: "unknown values fall back", level: "verbose", format: "yaml", want: Options{Level: slog.LevelInfo, Format: "json"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("ENV", tc.env)
			t.Setenv("LOG_LEVEL", tc.level)
			t.Setenv("LOG_FORMAT", tc.format)
			assert.Equal(t, tc.want, OptionsFromEnv())
		})
	}
}

func TestCriticalLevelIsRenamed(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: slog.LevelDebug, Format: "text"})

	log.Critical("app: boom")

	assert.Contains(t, buf.String(), "level=CRITICAL")
}

func TestErrorHelpersSkipNilAndPickLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: slog.LevelDebug, Format: "text"})

	log.BusinessError("budgets.create: validation failed", nil)
	log.InternalError("budgets.create: failed", nil)
	assert.Empty(t, buf.String())

	log.BusinessError("budgets.create: validation failed", errors.New("duplicate"), "user_id", "u-1")
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "err=duplicate")
	assert.Contains(t, out, "user_id=u-1")

	buf.Reset()
	log.InternalError("budgets.create: failed", errors.New("db down"))
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestWriterEmitsLinesWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: slog.LevelInfo, Format: "text"})

	log.Writer("db", slog.LevelDebug).Printf("%s slow query\n", "[200ms]")
	assert.Empty(t, buf.String())

	requests := log.Writer("http", slog.LevelInfo)
	requests.Print(`"GET /api/health HTTP/1.1" from 127.0.0.1 - 200 16B in 1ms`, "\n")
	requests.Print("  \n")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "component=http")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}
