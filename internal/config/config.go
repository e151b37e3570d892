// Package config discovers and decodes lintjs.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"lintjs/internal/directive"
	"lintjs/internal/trace"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "lintjs.toml"

// ErrNotFound reports that no configuration file exists up the tree.
var ErrNotFound = errors.New("no " + FileName + " found")

// Config is a decoded lintjs.toml.
type Config struct {
	Path string // absolute path of the file
	Root string // directory relative paths are resolved against

	Engine EngineConfig
	Output OutputConfig
	Trace  TraceConfig

	directives []directive.Entry
}

// fileConfig is the on-disk shape of FileName.
type fileConfig struct {
	Engine     EngineConfig   `toml:"engine"`
	Output     OutputConfig   `toml:"output"`
	Trace      TraceConfig    `toml:"trace"`
	Directives map[string]any `toml:"directives"`
}

// EngineConfig overrides the embedded scripts.
type EngineConfig struct {
	Bootstrap string `toml:"bootstrap"`
	Driver    string `toml:"driver"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Color   string `toml:"color"` // auto|on|off
	Timings bool   `toml:"timings"`
}

// TraceConfig enables the event log.
type TraceConfig struct {
	Output    string   `toml:"output"`
	Level     string   `toml:"level"`
	Mode      string   `toml:"mode"` // stream|ring|both; empty picks by level
	Heartbeat Duration `toml:"heartbeat"`
}

// Duration decodes TOML strings such as "500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest FileName. It returns ErrNotFound when
// there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return Load(path)
}

// Load decodes and validates the file at path.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(abs, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", abs, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", abs, undecoded[0].String())
	}

	cfg := Config{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Engine: raw.Engine,
		Output: raw.Output,
		Trace:  raw.Trace,
	}

	// meta.Keys keeps file order; the map does not
	for _, key := range meta.Keys() {
		if len(key) != 2 || key[0] != "directives" {
			continue
		}
		v, err := directive.FromAny(raw.Directives[key[1]])
		if err != nil {
			return nil, fmt.Errorf("%s: [directives].%s: %w", abs, key[1], err)
		}
		cfg.directives = append(cfg.directives, directive.Entry{Name: key[1], Value: v})
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Output.Color) {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if c.Trace.Mode != "" {
		if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
			return fmt.Errorf("[trace].mode: %w", err)
		}
	}
	if c.Trace.Heartbeat.Duration < 0 {
		return fmt.Errorf("[trace].heartbeat must not be negative")
	}
	return nil
}

// Directives returns the [directives] table in file order.
func (c *Config) Directives() []directive.Entry {
	if c == nil {
		return nil
	}
	out := make([]directive.Entry, len(c.directives))
	copy(out, c.directives)
	return out
}

// BootstrapPath returns the bootstrap script override resolved against Root,
// or "" when unset.
func (c *Config) BootstrapPath() string {
	if c == nil {
		return ""
	}
	return c.resolve(c.Engine.Bootstrap)
}

// DriverPath returns the driver script override resolved against Root,
// or "" when unset.
func (c *Config) DriverPath() string {
	if c == nil {
		return ""
	}
	return c.resolve(c.Engine.Driver)
}

func (c *Config) resolve(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}
