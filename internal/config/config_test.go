package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"loom/internal/macro"
)

func writeToml(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, File)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Expand.Jobs != 0 {
		t.Errorf("Jobs = %d, want 0", cfg.Expand.Jobs)
	}
	if cfg.Expand.MaxDiagnostics != 100 {
		t.Errorf("MaxDiagnostics = %d, want 100", cfg.Expand.MaxDiagnostics)
	}
	if cfg.Cache.Enabled {
		t.Errorf("cache enabled by default")
	}
	if cfg.Trace.Level != "off" || cfg.Trace.Output != "-" || cfg.Trace.Format != "auto" {
		t.Errorf("unexpected trace defaults: %+v", cfg.Trace)
	}
	if cfg.UI.Color != "auto" {
		t.Errorf("Color = %q, want auto", cfg.UI.Color)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeToml(t, t.TempDir(), `
[expand]
jobs = 4
max_diagnostics = 20
phases = ["types", "declarations"]

[cache]
enabled = true
dir = "/tmp/loom-cache"

[trace]
level = "detail"
output = "trace.ndjson"
format = "ndjson"

[ui]
progress = true
color = "off"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Expand.Jobs != 4 || cfg.Expand.MaxDiagnostics != 20 {
		t.Errorf("unexpected [expand]: %+v", cfg.Expand)
	}
	if !reflect.DeepEqual(cfg.Expand.Phases, []string{"types", "declarations"}) {
		t.Errorf("Phases = %v", cfg.Expand.Phases)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Dir != "/tmp/loom-cache" {
		t.Errorf("unexpected [cache]: %+v", cfg.Cache)
	}
	if cfg.Trace.Level != "detail" || cfg.Trace.Output != "trace.ndjson" || cfg.Trace.Format != "ndjson" {
		t.Errorf("unexpected [trace]: %+v", cfg.Trace)
	}
	if !cfg.UI.Progress || cfg.UI.Color != "off" {
		t.Errorf("unexpected [ui]: %+v", cfg.UI)
	}

	phases, err := cfg.Expand.ParsedPhases()
	if err != nil {
		t.Fatalf("ParsedPhases: %v", err)
	}
	want := []macro.Phase{macro.PhaseTypes, macro.PhaseDeclarations}
	if !reflect.DeepEqual(phases, want) {
		t.Errorf("ParsedPhases = %v, want %v", phases, want)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeToml(t, t.TempDir(), "[expand]\njobs = 2\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Expand.Jobs != 2 {
		t.Errorf("Jobs = %d, want 2", cfg.Expand.Jobs)
	}
	if cfg.Expand.MaxDiagnostics != 100 {
		t.Errorf("MaxDiagnostics = %d, want default 100", cfg.Expand.MaxDiagnostics)
	}
	if cfg.Trace.Level != "off" {
		t.Errorf("Level = %q, want default off", cfg.Trace.Level)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeToml(t, t.TempDir(), "[expand\njobs = ???\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error, got nil")
	} else if !strings.Contains(err.Error(), "failed to parse TOML") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative jobs",
			mutate:  func(c *Config) { c.Expand.Jobs = -1 },
			wantErr: "expand.jobs",
		},
		{
			name:    "negative cap",
			mutate:  func(c *Config) { c.Expand.MaxDiagnostics = -5 },
			wantErr: "expand.max_diagnostics",
		},
		{
			name:    "unknown phase",
			mutate:  func(c *Config) { c.Expand.Phases = []string{"linking"} },
			wantErr: "expand.phases",
		},
		{
			name:    "unknown trace level",
			mutate:  func(c *Config) { c.Trace.Level = "loud" },
			wantErr: "trace.level",
		},
		{
			name:    "unknown trace format",
			mutate:  func(c *Config) { c.Trace.Format = "xml" },
			wantErr: "trace.format",
		},
		{
			name:    "unknown color mode",
			mutate:  func(c *Config) { c.UI.Color = "maybe" },
			wantErr: "ui.color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeToml(t, t.TempDir(), "[expand]\njobs = 2\n")

	t.Setenv(EnvJobs, "7")
	t.Setenv(EnvCache, "/tmp/loom-env-cache")
	t.Setenv(EnvTrace, "phase")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Expand.Jobs != 7 {
		t.Errorf("Jobs = %d, want env override 7", cfg.Expand.Jobs)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Dir != "/tmp/loom-env-cache" {
		t.Errorf("cache override not applied: %+v", cfg.Cache)
	}
	if cfg.Trace.Level != "phase" {
		t.Errorf("Level = %q, want phase", cfg.Trace.Level)
	}
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv(EnvJobs, "many")
	t.Setenv(EnvTrace, "loud")

	cfg := Default()
	applyEnvOverrides(&cfg)

	if cfg.Expand.Jobs != 0 {
		t.Errorf("Jobs = %d, want untouched 0", cfg.Expand.Jobs)
	}
	if cfg.Trace.Level != "off" {
		t.Errorf("Level = %q, want untouched off", cfg.Trace.Level)
	}
}

func TestEnvCacheBool(t *testing.T) {
	t.Setenv(EnvCache, "true")
	cfg := Default()
	applyEnvOverrides(&cfg)
	if !cfg.Cache.Enabled || cfg.Cache.Dir != "" {
		t.Errorf("bool override must only toggle Enabled: %+v", cfg.Cache)
	}

	t.Setenv(EnvCache, "false")
	cfg = Default()
	cfg.Cache.Enabled = true
	applyEnvOverrides(&cfg)
	if cfg.Cache.Enabled {
		t.Errorf("false override must disable the cache")
	}
}

func TestFindLoomToml(t *testing.T) {
	root := t.TempDir()
	writeToml(t, root, "[expand]\n")
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindLoomToml(deep)
	if err != nil {
		t.Fatalf("FindLoomToml: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if path != filepath.Join(root, File) {
		t.Errorf("path = %s, want %s", path, filepath.Join(root, File))
	}
}

func TestFindLoomTomlMissing(t *testing.T) {
	_, ok, err := FindLoomToml(t.TempDir())
	if err != nil {
		t.Fatalf("FindLoomToml: %v", err)
	}
	if ok {
		t.Fatal("found a manifest in an empty tree")
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Expand.MaxDiagnostics != 100 {
		t.Errorf("defaults not applied: %+v", cfg.Expand)
	}
}
