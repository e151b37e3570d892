// Package driver runs one lintjs invocation: load the target, build the
// directive registry, run the engine phases and report the outcome.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"lintjs/internal/diag"
	"lintjs/internal/diagfmt"
	"lintjs/internal/directive"
	"lintjs/internal/engine"
	"lintjs/internal/exitcode"
	"lintjs/internal/observ"
	"lintjs/internal/source"
	"lintjs/internal/trace"
	"lintjs/internal/ui"
)

// Streams are the process streams of one invocation.
type Streams struct {
	In  io.Reader
	Out io.Writer // script output, diagnostics and usage
	Err io.Writer // harness errors, timings and trace dumps
}

// Request bundles what Run needs besides the context.
type Request struct {
	Invocation directive.Invocation
	Settings   Settings
	Streams    Streams
	// Color enables ANSI styling of diagnostics and timings.
	Color bool
	// Usage prints the usage text; called on NoSource.
	Usage func(io.Writer)
	// SetupErr is a harness setup failure (configuration, tracer, profiler).
	// It is reported as ContextFailure once the source has loaded, so a
	// missing source still wins.
	SetupErr error
}

// Run executes one invocation and returns its outcome. It never panics on
// script failures; those become diagnostics printed to Streams.Out.
func Run(ctx context.Context, req Request) exitcode.Outcome {
	st := req.Streams
	if st.In == nil {
		st.In = os.Stdin
	}
	if st.Out == nil {
		st.Out = os.Stdout
	}
	if st.Err == nil {
		st.Err = os.Stderr
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "invocation", 0)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	timer := observ.NewTimer()

	outcome, d := run(ctx, req, st, timer)

	if d != nil {
		diagfmt.Pretty(st.Out, d, diagfmt.PrettyOpts{Color: req.Color, ShowStack: true})
	}
	span.WithExtra("exit", fmt.Sprint(outcome.Code())).End(outcome.String())

	if outcome != exitcode.Success && outcome != exitcode.NoSource {
		dumpTrace(tracer, req.Settings, st.Err)
	}
	if req.Settings.Timings {
		fmt.Fprint(st.Err, ui.Timings(timer.Report(), req.Color))
	}
	return outcome
}

func run(ctx context.Context, req Request, st Streams, timer *observ.Timer) (exitcode.Outcome, *diag.Diagnostic) {
	parent := trace.CurrentSpan(ctx).SpanID
	tracer := trace.FromContext(ctx)

	loadSpan := trace.Begin(tracer, trace.ScopeDriver, "load_source", parent)
	files := source.NewFileSet()
	var doc *source.File
	err := timer.Track("load", func() error {
		var err error
		doc, err = loadSource(files, req.Invocation.Filename, req.Settings.StdinName, st.In)
		return err
	})
	loadSpan.End(errDetail(err))
	if err != nil {
		fmt.Fprintf(st.Err, "lintjs: %v\n", err)
		if req.Usage != nil {
			req.Usage(st.Out)
		}
		return exitcode.NoSource, nil
	}

	if req.SetupErr != nil {
		return exitcode.ContextFailure, contextDiagnostic(req.SetupErr)
	}

	var scripts engine.Scripts
	err = timer.Track("scripts", func() error {
		var err error
		scripts, err = engine.DefaultScripts().WithOverrides(req.Settings.BootstrapPath, req.Settings.DriverPath)
		return err
	})
	if err != nil {
		return exitcode.ContextFailure, contextDiagnostic(err)
	}

	reg := directive.Build(req.Invocation, req.Settings.Directives())
	trace.Point(tracer, trace.ScopeDriver, "directives", fmt.Sprintf("%d entries", reg.Len()), parent)

	host := &engine.Host{Scripts: scripts, Out: st.Out, Files: files, Timer: timer}
	return host.Run(ctx, reg, doc)
}

// loadSource reads the named file, or stdin when filename is empty. Every
// failure is reported as source.ErrNoSource or source.ErrFileUnreadable.
func loadSource(files *source.FileSet, filename, stdinName string, stdin io.Reader) (*source.File, error) {
	if filename != "" {
		return files.LoadFile(filename)
	}
	doc, err := files.ReadStream(stdin, stdinName)
	if err != nil && !errors.Is(err, source.ErrNoSource) {
		return nil, fmt.Errorf("%w: %w", source.ErrFileUnreadable, err)
	}
	return doc, err
}

func contextDiagnostic(err error) *diag.Diagnostic {
	return &diag.Diagnostic{
		Kind:    diag.KindHost,
		Message: "Error: " + engine.ErrContext.Error() + ": " + err.Error(),
	}
}

// dumpTrace prints the in-memory events of a ring tracer after a failure.
func dumpTrace(tracer trace.Tracer, s Settings, w io.Writer) {
	d, ok := tracer.(trace.Dumper)
	if !ok {
		return
	}
	// a stream on stderr has already shown every event
	if s.TraceMode == trace.ModeBoth && (s.TraceOutput == "" || s.TraceOutput == "-") {
		return
	}
	fmt.Fprintln(w, "trace (last events):")
	if err := d.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
