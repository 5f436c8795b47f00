package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/gapedit.yaml", `
engine:
  gap_capacity: 16
logging:
  level: warn
scripts:
  paths:
    - one.lua
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/gapedit.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := GetByPath(config, "engine.gap_capacity"); v != 16 {
		t.Errorf("engine.gap_capacity = %v (%T), want 16", v, v)
	}
	if v, _ := GetByPath(config, "logging.level"); v != "warn" {
		t.Errorf("logging.level = %v, want warn", v)
	}
	v, _ := GetByPath(config, "scripts.paths")
	paths, ok := v.([]any)
	if !ok || len(paths) != 1 || paths[0] != "one.lua" {
		t.Errorf("scripts.paths = %v", v)
	}
}

func TestYAMLLoader_MissingFile(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/missing.yml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config, got %v", config)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "engine:\n  gap_capacity: [1\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Path != "/bad.yaml" {
		t.Errorf("Path = %q, want /bad.yaml", perr.Path)
	}
}

func TestYAMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("level: error\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config["level"] != "error" {
		t.Errorf("level = %v, want error", config["level"])
	}
}

func TestYAMLLoader_EmptyFile(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yaml", "")

	config, err := NewYAMLLoaderWithFS(memfs, "/empty.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("config = %#v, want empty non-nil map", config)
	}
}
