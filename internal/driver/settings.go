package driver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lintjs/internal/config"
	"lintjs/internal/directive"
	"lintjs/internal/prof"
	"lintjs/internal/trace"
)

// Settings is the harness configuration of one invocation after merging the
// config file with command-line harness options. Options win.
type Settings struct {
	Config *config.Config // nil when no lintjs.toml was found

	Color         string // auto|on|off
	Timings       bool
	TraceOutput   string
	TraceLevel    trace.Level
	TraceMode     trace.StorageMode // zero lets the tracer pick
	Heartbeat     time.Duration
	StdinName     string
	BootstrapPath string
	DriverPath    string
	Profile       prof.Paths

	// Warnings lists harness option values that were ignored.
	Warnings []string
}

// ResolveSettings loads the configuration (explicit -config, or the nearest
// lintjs.toml above workDir) and applies the harness options of inv on top.
// A malformed option value is ignored and recorded in Settings.Warnings. An
// error means the configuration itself is unusable; the returned Settings
// still carry every command-line option so the caller can keep going far
// enough to report a missing source first.
func ResolveSettings(inv directive.Invocation, workDir string) (Settings, error) {
	var s Settings

	cfg, cfgErr := loadConfig(inv, workDir)
	if cfgErr == nil && cfg != nil {
		s.Config = cfg
		s.Color = cfg.Output.Color
		s.Timings = cfg.Output.Timings
		s.TraceOutput = cfg.Trace.Output
		s.Heartbeat = cfg.Trace.Heartbeat.Duration
		s.BootstrapPath = cfg.BootstrapPath()
		s.DriverPath = cfg.DriverPath()
		// validated by config.Load
		s.TraceLevel, _ = trace.ParseLevel(cfg.Trace.Level)
		if cfg.Trace.Mode != "" {
			s.TraceMode, _ = trace.ParseMode(cfg.Trace.Mode)
		}
	}

	if v, ok := inv.Option(directive.OptColor); ok {
		switch mode := strings.ToLower(v); mode {
		case "auto", "on", "off":
			s.Color = mode
		default:
			s.warnf("ignoring -%s=%s (expected auto|on|off)", directive.OptColor, v)
		}
	}
	if v, ok := inv.Option(directive.OptTimings); ok {
		if b, err := strconv.ParseBool(v); err != nil {
			s.warnf("ignoring -%s=%s (expected true or false)", directive.OptTimings, v)
		} else {
			s.Timings = b
		}
	}
	if v, ok := inv.Option(directive.OptTrace); ok {
		s.TraceOutput = v
	}
	if v, ok := inv.Option(directive.OptTraceLevel); ok {
		if level, err := trace.ParseLevel(v); err != nil {
			s.warnf("ignoring -%s=%s: %v", directive.OptTraceLevel, v, err)
		} else {
			s.TraceLevel = level
		}
	}
	if v, ok := inv.Option(directive.OptTraceMode); ok {
		if mode, err := trace.ParseMode(v); err != nil {
			s.warnf("ignoring -%s=%s: %v", directive.OptTraceMode, v, err)
		} else {
			s.TraceMode = mode
		}
	}
	if v, ok := inv.Option(directive.OptStdinName); ok {
		s.StdinName = v
	}
	if v, ok := inv.Option(directive.OptEngine); ok {
		s.BootstrapPath = v
	}
	if v, ok := inv.Option(directive.OptDriver); ok {
		s.DriverPath = v
	}
	s.Profile = prof.Paths{
		CPU:   pathOption(inv, directive.OptCPUProfile),
		Mem:   pathOption(inv, directive.OptMemProfile),
		Trace: pathOption(inv, directive.OptRuntimeTrace),
	}

	if s.Color == "" {
		s.Color = "auto"
	}
	s.Color = strings.ToLower(s.Color)

	// an output without a level means "trace the phases"
	if s.TraceOutput != "" && s.TraceLevel == trace.LevelOff {
		s.TraceLevel = trace.LevelPhase
	}
	return s, cfgErr
}

func (s *Settings) warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// pathOption drops bare options: "-cpu-profile" alone names no file.
func pathOption(inv directive.Invocation, name string) string {
	v, ok := inv.Option(name)
	if !ok || v == "true" {
		return ""
	}
	return v
}

func loadConfig(inv directive.Invocation, workDir string) (*config.Config, error) {
	if path, ok := inv.Option(directive.OptConfig); ok && path != "" && path != "true" {
		return config.Load(path)
	}
	cfg, err := config.Discover(workDir)
	if errors.Is(err, config.ErrNotFound) {
		return nil, nil
	}
	return cfg, err
}

// Directives returns the config-file directives applied between the
// built-in defaults and the command line.
func (s Settings) Directives() []directive.Entry {
	return s.Config.Directives()
}
