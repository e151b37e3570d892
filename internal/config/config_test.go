package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lintjs/internal/directive"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[engine]
bootstrap = "vendor/jslint.js"

[output]
color = "off"
timings = true

[trace]
output = "trace.ndjson"
level = "phase"
heartbeat = "250ms"
mode = "both"

[directives]
white = true
maxlen = 100
predef = ["$", "jQuery"]
indent = 2.5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != dir {
		t.Errorf("Root = %q, want %q", cfg.Root, dir)
	}
	if got, want := cfg.BootstrapPath(), filepath.Join(dir, "vendor", "jslint.js"); got != want {
		t.Errorf("BootstrapPath() = %q, want %q", got, want)
	}
	if cfg.DriverPath() != "" {
		t.Errorf("DriverPath() = %q, want empty", cfg.DriverPath())
	}
	if cfg.Output.Color != "off" || !cfg.Output.Timings {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Trace.Mode != "both" {
		t.Errorf("Trace.Mode = %q", cfg.Trace.Mode)
	}
	if cfg.Trace.Heartbeat.Duration != 250*time.Millisecond {
		t.Errorf("Heartbeat = %v", cfg.Trace.Heartbeat.Duration)
	}

	want := []directive.Entry{
		{Name: "white", Value: directive.Bool(true)},
		{Name: "maxlen", Value: directive.Number(100)},
		{Name: "predef", Value: directive.String("$,jQuery")},
		{Name: "indent", Value: directive.Number(2.5)},
	}
	got := cfg.Directives()
	if len(got) != len(want) {
		t.Fatalf("Directives() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Name != want[i].Name || !got[i].Value.Equal(want[i].Value) {
			t.Errorf("Directives()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad toml", "[engine\n", "failed to parse TOML"},
		{"unknown key", "[output]\ncolour = \"on\"\n", "unknown key"},
		{"bad color", "[output]\ncolor = \"rainbow\"\n", "[output].color"},
		{"bad level", "[trace]\nlevel = \"loud\"\n", "[trace].level"},
		{"bad heartbeat", "[trace]\nheartbeat = \"soon\"\n", "invalid duration"},
		{"bad mode", "[trace]\nmode = \"sideways\"\n", "[trace].mode"},
		{"mixed array directive", "[directives]\npredef = [\"a\", 1]\n", "[directives].predef"},
		{"table directive", "[directives.predef]\na = 1\n", "[directives].predef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\ncolor = \"on\"\n")
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Errorf("Path = %q", cfg.Path)
	}
}

func TestDiscoverNotFound(t *testing.T) {
	// t.TempDir lives under the system temp dir, which has no lintjs.toml
	// unless someone put one there.
	dir := t.TempDir()
	if _, ok, _ := Find(filepath.Dir(dir)); ok {
		t.Skip("a lintjs.toml exists above the temp dir")
	}
	if _, err := Discover(dir); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNilConfig(t *testing.T) {
	var cfg *Config
	if cfg.Directives() != nil || cfg.BootstrapPath() != "" || cfg.DriverPath() != "" {
		t.Error("nil config must behave as empty")
	}
}
