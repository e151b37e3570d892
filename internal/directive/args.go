package directive

import "strings"

// Harness option names recognized after a single dash.
const (
	OptConfig       = "config"
	OptEngine       = "engine"
	OptDriver       = "driver"
	OptColor        = "color"
	OptTimings      = "timings"
	OptTrace        = "trace"
	OptTraceLevel   = "trace-level"
	OptTraceMode    = "trace-mode"
	OptStdinName    = "stdin-name"
	OptCPUProfile   = "cpu-profile"
	OptMemProfile   = "mem-profile"
	OptRuntimeTrace = "runtime-trace"
)

var knownOptions = map[string]bool{
	OptConfig:       true,
	OptEngine:       true,
	OptDriver:       true,
	OptColor:        true,
	OptTimings:      true,
	OptTrace:        true,
	OptTraceLevel:   true,
	OptTraceMode:    true,
	OptStdinName:    true,
	OptCPUProfile:   true,
	OptMemProfile:   true,
	OptRuntimeTrace: true,
}

// Invocation is the result of splitting argv into its three token families.
type Invocation struct {
	// Filename is the first bare token; empty means standard input.
	Filename string
	// Directives holds the --name[=value] tokens in command-line order.
	Directives []Entry
	// Options holds recognized single-dash harness options.
	// A bare option (no "=") maps to "true".
	Options map[string]string

	ShowVersion bool
	ShowHelp    bool
}

// Option returns a harness option value.
func (inv Invocation) Option(name string) (string, bool) {
	v, ok := inv.Options[name]
	return v, ok
}

// ParseArgs splits raw command-line tokens (without the program name).
//
// --name sets directive name to Bool(false); --name=value sets it to the
// verbatim String(value). -v/-version and -h/-help stop parsing immediately.
// Any other token starting with a dash is a harness option; unknown ones are
// dropped. The first remaining token is the filename, later ones are ignored.
func ParseArgs(args []string) Invocation {
	inv := Invocation{Options: make(map[string]string)}
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg[2:], "=")
			if name == "" {
				continue
			}
			v := Bool(false)
			if hasValue {
				v = String(value)
			}
			inv.Directives = append(inv.Directives, Entry{Name: name, Value: v})

		case strings.HasPrefix(arg, "-"):
			name, value, hasValue := strings.Cut(arg[1:], "=")
			switch name {
			case "v", "version":
				inv.ShowVersion = true
				return inv
			case "h", "help":
				inv.ShowHelp = true
				return inv
			}
			if !knownOptions[name] {
				continue
			}
			if !hasValue {
				value = "true"
			}
			inv.Options[name] = value

		case inv.Filename == "":
			inv.Filename = arg
		}
	}
	return inv
}

// Build creates a frozen registry: Defaults, then extra (for example from a
// config file), then the command-line directives of inv.
func Build(inv Invocation, extra []Entry) *Registry {
	r := NewDefaultRegistry()
	r.Apply(extra)
	r.Apply(inv.Directives)
	r.Freeze()
	return r
}
