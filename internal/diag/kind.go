package diag

// Phase identifies which script phase produced a diagnostic.
type Phase uint8

const (
	PhaseUnknown Phase = iota
	PhaseBootstrap
	PhaseDriver
)

func (p Phase) String() string {
	switch p {
	case PhaseBootstrap:
		return "bootstrap"
	case PhaseDriver:
		return "driver"
	}
	return "unknown"
}

// Kind tells at which stage a script failed.
type Kind uint8

const (
	// KindParse is a syntax error found before compilation.
	KindParse Kind = iota + 1
	// KindCompile is an error raised by the compiler after a successful parse.
	KindCompile
	// KindRuntime is an exception raised while the script ran.
	KindRuntime
	// KindHost is a failure of the host itself (a panic in a binding).
	KindHost
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindCompile:
		return "compile"
	case KindRuntime:
		return "runtime"
	case KindHost:
		return "host"
	}
	return "unknown"
}
