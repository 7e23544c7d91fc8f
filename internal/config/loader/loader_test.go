package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[gesture]
pan_threshold = 8
min_fps = 1.5

[recycler]
strict = true
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"gesture":  map[string]any{"pan_threshold": int64(8), "min_fps": 1.5},
		"recycler": map[string]any{"strict": true},
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
gesture:
  pan_threshold: 8
log:
  level: debug
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"gesture": map[string]any{"pan_threshold": 8},
		"log":     map[string]any{"level": "debug"},
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadNonExistent(t *testing.T) {
	memfs := NewMemFS()
	for _, path := range []string{"/missing.toml", "/missing.yaml"} {
		l, err := ForPath(memfs, path)
		if err != nil {
			t.Fatalf("ForPath(%q): %v", path, err)
		}
		config, err := l.Load()
		if err != nil || config != nil {
			t.Errorf("Load(%q) = %v, %v, want nil, nil", path, config, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"toml", "/bad.toml", "[gesture\npan_threshold = 1"},
		{"yaml", "/bad.yml", "gesture: [1, 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memfs := NewMemFS()
			memfs.AddFile(tt.path, tt.content)
			l, err := ForPath(memfs, tt.path)
			if err != nil {
				t.Fatalf("ForPath: %v", err)
			}
			_, err = l.Load()
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Load error = %v, want *ParseError", err)
			}
			if perr.Path != tt.path {
				t.Errorf("ParseError.Path = %q, want %q", perr.Path, tt.path)
			}
		})
	}
}

func TestTOMLParseErrorPosition(t *testing.T) {
	_, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("a = 1\nb = = 2\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
}

func TestForPathUnsupported(t *testing.T) {
	if _, err := ForPath(NewMemFS(), "/config.json"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ForPath(json) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("TOUCHSTONE_GESTURE_PAN_THRESHOLD", "10")
	t.Setenv("TOUCHSTONE_RECYCLER_ESTIMATED_ROW_HEIGHT", "30.5")
	t.Setenv("TOUCHSTONE_SCRIPT", "/tmp/list.lua")
	t.Setenv("TOUCHSTONE_DEBUG", "yes")
	t.Setenv("TOUCHSTONE_NOSECTION", "x")

	config, err := NewEnvLoader("TOUCHSTONE_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"gesture.pan_threshold", int64(10)},
		{"recycler.estimated_row_height", 30.5},
		{"demo.script", "/tmp/list.lua"},
		{"log.level", "debug"},
	}
	for _, tt := range tests {
		got, ok := GetByPath(config, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
	if _, ok := config["nosection"]; ok {
		t.Error("variable without a setting name was loaded")
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("TOUCHSTONE_")

	tests := []struct {
		env  string
		want string
	}{
		{"TOUCHSTONE_GESTURE_PAN_THRESHOLD", "gesture.pan_threshold"},
		{"TOUCHSTONE_LOG_LEVEL", "log.level"},
		{"TOUCHSTONE_SIMPLE", ""},
	}
	for _, tt := range tests {
		if got := loader.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestEnvLoader_parseValue(t *testing.T) {
	loader := NewEnvLoader("TOUCHSTONE_")

	tests := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"ON", true},
		{"no", false},
		{"1", int64(1)},
		{"-10", int64(-10)},
		{"3.14", 3.14},
		{"debug", "debug"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := loader.parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.input, got, got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"gesture": map[string]any{"pan_threshold": 6, "history_limit": 5},
		"log":     map[string]any{"level": "info"},
	}
	src := map[string]any{
		"gesture": map[string]any{"pan_threshold": 9},
		"log":     "off",
		"demo":    map[string]any{"rows": 10},
	}

	got := DeepMerge(Clone(dst), src)
	want := map[string]any{
		"gesture": map[string]any{"pan_threshold": 9, "history_limit": 5},
		"log":     "off",
		"demo":    map[string]any{"rows": 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DeepMerge mismatch (-want +got):\n%s", diff)
	}
	if dst["gesture"].(map[string]any)["pan_threshold"] != 6 {
		t.Error("Clone shared nested maps with the original")
	}
}
