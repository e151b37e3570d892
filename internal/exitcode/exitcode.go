// Package exitcode maps the outcome of one lintjs invocation to a process
// exit status.
package exitcode

// Outcome classifies how an invocation ended.
type Outcome uint8

const (
	// Success means both phases completed.
	Success Outcome = iota
	// CompilationFailure means the bootstrap or driver script failed to
	// parse, compile or run.
	CompilationFailure
	// NoSource means there was nothing to analyze.
	NoSource
	// ContextFailure means the execution environment could not be built.
	ContextFailure
)

// Code returns the process exit status for o.
func (o Outcome) Code() int {
	switch o {
	case Success:
		return 0
	case CompilationFailure:
		return 1
	case NoSource:
		return 2
	case ContextFailure:
		return 3
	}
	// unknown outcomes are failures, never success
	return 3
}

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case CompilationFailure:
		return "compilation failure"
	case NoSource:
		return "no source"
	case ContextFailure:
		return "context failure"
	default:
		return "unknown"
	}
}
