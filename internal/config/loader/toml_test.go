package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
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
	memfs.AddFile("/gapedit.toml", `
[engine]
gap_capacity = 64

[logging]
level = "debug"
file = "/tmp/gapedit.log"

[scripts]
paths = ["a.lua", "b.lua"]
`)

	loader := NewTOMLLoaderWithFS(memfs, "/gapedit.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	engine, ok := config["engine"].(map[string]any)
	if !ok {
		t.Fatal("expected engine to be a map")
	}
	if engine["gap_capacity"] != int64(64) {
		t.Errorf("gap_capacity = %v (%T), want 64", engine["gap_capacity"], engine["gap_capacity"])
	}

	if v, _ := GetByPath(config, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}

	paths, ok := config["scripts"].(map[string]any)["paths"].([]any)
	if !ok || len(paths) != 2 || paths[0] != "a.lua" {
		t.Errorf("scripts.paths = %v", config["scripts"])
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	loader := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config for missing file, got %v", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[engine]\ngap_capacity = = 3\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q, want /bad.toml", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if !strings.Contains(perr.Error(), "line 2") {
		t.Errorf("Error() = %q, want line number", perr.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	loader := NewTOMLLoader("")
	config, err := loader.LoadFromReader(strings.NewReader(`level = "warn"`))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config["level"] != "warn" {
		t.Errorf("level = %v, want warn", config["level"])
	}
}

func TestForPath(t *testing.T) {
	memfs := NewMemFS()

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/a.toml", "*loader.TOMLLoader", false},
		{"/a.TOML", "*loader.TOMLLoader", false},
		{"/a.yaml", "*loader.YAMLLoader", false},
		{"/a.yml", "*loader.YAMLLoader", false},
		{"/a.json", "", true},
		{"/a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, err := ForPath(memfs, tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForPath(%q) failed: %v", tt.path, err)
			}
			switch l.(type) {
			case *TOMLLoader:
				if tt.want != "*loader.TOMLLoader" {
					t.Errorf("ForPath(%q) = TOML loader, want %s", tt.path, tt.want)
				}
			case *YAMLLoader:
				if tt.want != "*loader.YAMLLoader" {
					t.Errorf("ForPath(%q) = YAML loader, want %s", tt.path, tt.want)
				}
			}
		})
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"engine":  map[string]any{"gap_capacity": 128},
		"logging": map[string]any{"level": "info", "file": ""},
	}
	src := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"scripts": map[string]any{"paths": []any{"x.lua"}},
	}

	merged := DeepMerge(dst, src)

	if v, _ := GetByPath(merged, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
	if v, ok := GetByPath(merged, "logging.file"); !ok || v != "" {
		t.Errorf("logging.file = %v, %v; want kept", v, ok)
	}
	if v, _ := GetByPath(merged, "engine.gap_capacity"); v != 128 {
		t.Errorf("engine.gap_capacity = %v, want 128", v)
	}
	if _, ok := GetByPath(merged, "scripts.paths"); !ok {
		t.Error("scripts.paths missing after merge")
	}
}

func TestDeepMerge_ReplacesNonMaps(t *testing.T) {
	merged := DeepMerge(
		map[string]any{"engine": map[string]any{"gap_capacity": 1}},
		map[string]any{"engine": "flat"},
	)
	if merged["engine"] != "flat" {
		t.Errorf("engine = %v, want flat", merged["engine"])
	}

	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v, want empty map", got)
	}
}

func TestGetByPath_Missing(t *testing.T) {
	data := map[string]any{"a": map[string]any{"b": 1}, "c": 2}

	for _, path := range []string{"x", "a.x", "c.d", "a.b.c"} {
		if _, ok := GetByPath(data, path); ok {
			t.Errorf("GetByPath(%q) found a value, want missing", path)
		}
	}
}

func TestTOMLLoader_EmptyFile(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.toml", "")

	config, err := NewTOMLLoaderWithFS(memfs, "/empty.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("config = %#v, want empty non-nil map", config)
	}
}
