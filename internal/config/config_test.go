package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/touchstone/internal/config/loader"
	"github.com/dshills/touchstone/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Gesture.PanThreshold != 6 || cfg.Gesture.HistoryLimit != 5 || cfg.Gesture.Deceleration != 3000 {
		t.Errorf("gesture defaults = %+v", cfg.Gesture)
	}
	if cfg.Recycler.EstimatedRowHeight != 44 {
		t.Errorf("EstimatedRowHeight = %v, want 44", cfg.Recycler.EstimatedRowHeight)
	}
	trigger, delay := cfg.RepeatTiming()
	if trigger != 250*time.Millisecond || delay != 100*time.Millisecond {
		t.Errorf("RepeatTiming() = %v, %v", trigger, delay)
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "touchstone.toml", "[gesture]\npan_threshold = 10\nmin_fling_ms = 50\n\n[log]\nlevel = \"debug\"\n"},
		{"yaml", "touchstone.yaml", "gesture:\n  pan_threshold: 10\n  min_fling_ms: 50\nlog:\n  level: debug\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			t.Setenv("TOUCHSTONE_RECYCLER_STRICT", "true")
			t.Setenv("TOUCHSTONE_DEMO_ROWS", "42")

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}

			want := Default()
			want.Gesture.PanThreshold = 10
			want.Gesture.MinFlingMS = 50
			want.Log.Level = "debug"
			want.Recycler.Strict = true
			want.Demo.Rows = 42
			if diff := cmp.Diff(want, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
			if got := cfg.ScrollConfig().MinFlingDuration; got != 50*time.Millisecond {
				t.Errorf("MinFlingDuration = %v, want 50ms", got)
			}
			if cfg.LogLevel() != logging.LevelDebug {
				t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWith(loader.DefaultFS(), filepath.Join(t.TempDir(), "none.toml"), "")
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadWith(loader.DefaultFS(), writeFile(t, dir, "bad.toml", "[gesture\n"), "")
	var perr *loader.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("parse error = %v, want *loader.ParseError", err)
	}

	_, err = LoadWith(loader.DefaultFS(), writeFile(t, dir, "c.ini", ""), "")
	if !errors.Is(err, loader.ErrUnsupportedFormat) {
		t.Errorf("ini error = %v, want ErrUnsupportedFormat", err)
	}

	_, err = LoadWith(loader.DefaultFS(), writeFile(t, dir, "range.toml", "[gesture]\ndeceleration = -1\n[demo]\nfps = 0\n"), "")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("range error = %v, want ErrValidationFailed", err)
	}
	for _, path := range []string{"gesture.deceleration", "demo.fps"} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q does not name %s", err, path)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"history", func(c *Config) { c.Gesture.HistoryLimit = 0 }, "gesture.history_limit"},
		{"min fps", func(c *Config) { c.Gesture.MinFPS = 0 }, "gesture.min_fps"},
		{"row height", func(c *Config) { c.Recycler.EstimatedRowHeight = 0 }, "recycler.estimated_row_height"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"repeat", func(c *Config) { c.Input.RepeatDelayMS = 0 }, "input.repeat_delay_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Demo.Script = "list.lua"

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := writeFile(t, t.TempDir(), "out.toml", buf.String())
	got, err := LoadWith(loader.DefaultFS(), path, "")
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "touchstone.toml", "[demo]\nrows = 1\n")

	w, err := NewWatcher(path, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "other.toml", "[demo]\nrows = 7\n")
	writeFile(t, dir, "touchstone.toml", "[demo]\nrows = 2\n")

	select {
	case cfg := <-w.Updates():
		if cfg.Demo.Rows != 2 {
			t.Errorf("Demo.Rows = %d, want 2", cfg.Demo.Rows)
		}
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatcherReportsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "touchstone.toml", "")

	w, err := NewWatcher(path, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "touchstone.toml", "[demo]\nfps = 1000\n")

	select {
	case err := <-w.Errors():
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	case <-w.Updates():
		t.Fatal("invalid configuration was delivered")
	case <-time.After(5 * time.Second):
		t.Fatal("no error within 5s")
	}
}

func TestWatcherClose(t *testing.T) {
	path := writeFile(t, t.TempDir(), "touchstone.toml", "")
	w, err := NewWatcher(path, 0, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Updates(); ok {
		t.Error("Updates still open after Close")
	}
}
