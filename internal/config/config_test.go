package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
protected_branches = ["release", "staging"]
command_timeout = "30s"

[search]
regex = true
ignore_case = true

[stale]
age = "12w"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom = %v", err)
	}

	if len(cfg.ProtectedBranches) != 2 || cfg.ProtectedBranches[0] != "release" {
		t.Errorf("ProtectedBranches = %v", cfg.ProtectedBranches)
	}
	if !cfg.Search.Regex || !cfg.Search.IgnoreCase {
		t.Errorf("Search = %+v, want both flags set", cfg.Search)
	}
	if cfg.Stale.Age != "12w" {
		t.Errorf("Stale.Age = %q, want 12w", cfg.Stale.Age)
	}
	d, err := cfg.Timeout()
	if err != nil {
		t.Fatalf("Timeout = %v", err)
	}
	if d != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", d)
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("missing config should not error, got %v", err)
	}
	if len(cfg.ProtectedBranches) != 0 {
		t.Errorf("missing config should yield defaults, got %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "protected_branches = not-a-list")
	if _, err := LoadFrom(path); err == nil {
		t.Error("invalid TOML should return an error")
	}
}

func TestLoadFrom_BadTimeout(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `command_timeout = "soon"`)
	if _, err := LoadFrom(path); err == nil {
		t.Error("unparseable command_timeout should return an error")
	}

	path = writeConfig(t, `command_timeout = "-5s"`)
	if _, err := LoadFrom(path); err == nil {
		t.Error("negative command_timeout should return an error")
	}
}

func TestTimeout_Empty(t *testing.T) {
	t.Parallel()

	cfg := Default()
	d, err := cfg.Timeout()
	if err != nil {
		t.Fatalf("Timeout = %v", err)
	}
	if d != 0 {
		t.Errorf("Timeout = %v, want 0 (unbounded)", d)
	}
}
