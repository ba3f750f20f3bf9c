// Package config loads loom.toml, the host-side knobs for expansion
// sessions. The engine core takes no configuration; everything here is
// about how sessions schedule, cache, trace and render.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"loom/internal/macro"
	"loom/internal/trace"
)

// File is the manifest name looked up from the working directory.
const File = "loom.toml"

// Environment variables override file values. Unparseable values are
// ignored, never fatal.
const (
	EnvJobs  = "LOOM_JOBS"
	EnvCache = "LOOM_CACHE"
	EnvTrace = "LOOM_TRACE"
)

// Config mirrors loom.toml.
type Config struct {
	Expand ExpandConfig `toml:"expand"`
	Cache  CacheConfig  `toml:"cache"`
	Trace  TraceConfig  `toml:"trace"`
	UI     UIConfig     `toml:"ui"`
}

// ExpandConfig controls session scheduling.
type ExpandConfig struct {
	// Jobs bounds concurrent executions within a phase; 0 means
	// GOMAXPROCS.
	Jobs int `toml:"jobs"`
	// MaxDiagnostics caps the session bag; 0 means the default cap.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Phases restricts which phases run; empty means all three.
	Phases []string `toml:"phases"`
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir overrides the user cache directory when set.
	Dir string `toml:"dir"`
}

// TraceConfig controls the span tracer.
type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// UIConfig controls terminal rendering.
type UIConfig struct {
	Progress bool   `toml:"progress"`
	Color    string `toml:"color"`
}

// Default returns the configuration used when no loom.toml exists.
func Default() Config {
	return Config{
		Expand: ExpandConfig{
			MaxDiagnostics: 100,
		},
		Trace: TraceConfig{
			Level:  "off",
			Output: "-",
			Format: "auto",
		},
		UI: UIConfig{
			Color: "auto",
		},
	}
}

// Load reads one loom.toml, layering file values over defaults and
// environment overrides over both.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover walks up from startDir looking for loom.toml and loads the
// nearest one. Without a manifest it returns defaults plus environment
// overrides; path is empty in that case.
func Discover(startDir string) (cfg Config, path string, err error) {
	path, ok, err := FindLoomToml(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		cfg = Default()
		applyEnvOverrides(&cfg)
		if err := cfg.Validate(); err != nil {
			return Config{}, "", err
		}
		return cfg, "", nil
	}
	cfg, err = Load(path)
	return cfg, path, err
}

// Validate rejects values no session could honor.
func (c Config) Validate() error {
	if c.Expand.Jobs < 0 {
		return fmt.Errorf("expand.jobs must be >= 0, got %d", c.Expand.Jobs)
	}
	if c.Expand.MaxDiagnostics < 0 {
		return fmt.Errorf("expand.max_diagnostics must be >= 0, got %d", c.Expand.MaxDiagnostics)
	}
	for _, name := range c.Expand.Phases {
		if _, err := macro.ParsePhase(name); err != nil {
			return fmt.Errorf("expand.phases: %w", err)
		}
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("trace.level: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("trace.format: %w", err)
	}
	switch c.UI.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("ui.color must be auto|on|off, got %q", c.UI.Color)
	}
	return nil
}

// ParsedPhases returns the configured phase subset, nil when unrestricted.
// Call after Validate; unknown names error here too.
func (c ExpandConfig) ParsedPhases() ([]macro.Phase, error) {
	if len(c.Phases) == 0 {
		return nil, nil
	}
	out := make([]macro.Phase, 0, len(c.Phases))
	for _, name := range c.Phases {
		p, err := macro.ParsePhase(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func applyEnvOverrides(cfg *Config) {
	if n, ok := parseInt(os.Getenv(EnvJobs)); ok {
		cfg.Expand.Jobs = n
	}
	if raw := strings.TrimSpace(os.Getenv(EnvCache)); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.Cache.Enabled = v
		} else {
			// Anything that is not a bool is a cache directory.
			cfg.Cache.Enabled = true
			cfg.Cache.Dir = raw
		}
	}
	if raw := strings.TrimSpace(os.Getenv(EnvTrace)); raw != "" {
		if _, err := trace.ParseLevel(raw); err == nil {
			cfg.Trace.Level = raw
		}
	}
}

func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
