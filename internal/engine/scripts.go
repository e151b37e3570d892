package engine

import (
	_ "embed"
	"fmt"
	"os"
)

// Resource names the embedded scripts are compiled under.
const (
	BootstrapName = "JSLint"
	DriverName    = "JSLint run and report"
)

//go:embed scripts/engine.js
var embeddedEngine string

//go:embed scripts/driver.js
var embeddedDriver string

// Script is an opaque text resource run as one phase.
type Script struct {
	Name string // resource name shown in diagnostics
	Text string
}

// Scripts are the two phase bodies handed to the Host.
type Scripts struct {
	Bootstrap Script
	Driver    Script
}

// DefaultScripts returns the embedded syntax-only engine and its driver.
func DefaultScripts() Scripts {
	return Scripts{
		Bootstrap: Script{Name: BootstrapName, Text: embeddedEngine},
		Driver:    Script{Name: DriverName, Text: embeddedDriver},
	}
}

// LoadScript reads a script resource from disk; path becomes the resource name.
func LoadScript(path string) (Script, error) {
	// #nosec G304 -- engine scripts are chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("load script: %w", err)
	}
	if len(data) == 0 {
		return Script{}, fmt.Errorf("load script: %s is empty", path)
	}
	return Script{Name: path, Text: string(data)}, nil
}

// WithOverrides replaces the bootstrap and/or driver script with the files
// at the given paths. Empty paths keep the current script.
func (s Scripts) WithOverrides(bootstrapPath, driverPath string) (Scripts, error) {
	if bootstrapPath != "" {
		b, err := LoadScript(bootstrapPath)
		if err != nil {
			return s, fmt.Errorf("bootstrap: %w", err)
		}
		s.Bootstrap = b
	}
	if driverPath != "" {
		d, err := LoadScript(driverPath)
		if err != nil {
			return s, fmt.Errorf("driver: %w", err)
		}
		s.Driver = d
	}
	return s, nil
}
