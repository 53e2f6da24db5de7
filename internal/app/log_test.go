package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFleetHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		level   slog.Level
		message string
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "basic info message",
			level:   slog.LevelInfo,
			message: "ship added",
			want:    "2024-06-15T14:30:45Z\tINFO\tship added\n",
		},
		{
			name:    "with record attrs",
			level:   slog.LevelWarn,
			message: "task rescheduled",
			attrs:   []slog.Attr{slog.String("id", "task-001"), slog.Int("hours", 8)},
			want:    "2024-06-15T14:30:45Z\tWARN\ttask rescheduled\tid=task-001\thours=8\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newFleetHandler(&buf, slog.LevelDebug)

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			r.AddAttrs(tt.attrs...)

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFleetHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newFleetHandler(&buf, slog.LevelInfo)).
		With("store", "ships").
		WithGroup("req")

	logger.Info("saved", "id", "ship-1")
	logger.Debug("hidden")

	got := buf.String()
	if !strings.Contains(got, "\tsaved\tstore=ships\treq.id=ship-1\n") {
		t.Errorf("unexpected line %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Error("debug record written at info level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, f, err := newLogger(dir, "info")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	logger.Info("started")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, "fleet.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\tINFO\tstarted\n") {
		t.Errorf("log file = %q", data)
	}
}
