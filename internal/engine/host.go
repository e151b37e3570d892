package engine

import (
	"context"
	"fmt"
	"io"

	"lintjs/internal/diag"
	"lintjs/internal/directive"
	"lintjs/internal/exitcode"
	"lintjs/internal/observ"
	"lintjs/internal/source"
	"lintjs/internal/trace"
)

// Host runs the bootstrap and driver phases against one source document.
type Host struct {
	Scripts Scripts
	// Out receives print() output.
	Out io.Writer
	// Files is shared with the caller so it can inspect compiled scripts.
	Files *source.FileSet
	// Timer records one entry per phase when set.
	Timer *observ.Timer
}

// NewHost returns a Host that runs scripts and prints to out.
func NewHost(scripts Scripts, out io.Writer) *Host {
	return &Host{Scripts: scripts, Out: out, Files: source.NewFileSet()}
}

// Run builds the environment, then runs bootstrap and driver in order.
// The first failing phase stops the run and its diagnostic is returned with
// CompilationFailure; a failure to build the environment is ContextFailure
// and runs nothing. The environment is exited and released on every path.
func (h *Host) Run(ctx context.Context, reg *directive.Registry, doc *source.File) (exitcode.Outcome, *diag.Diagnostic) {
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "run", trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: runSpan.ID()})

	outcome, d := h.run(ctx, reg, doc)

	runSpan.WithExtra("outcome", outcome.String()).End("")
	return outcome, d
}

func (h *Host) run(ctx context.Context, reg *directive.Registry, doc *source.File) (exitcode.Outcome, *diag.Diagnostic) {
	if h.Files == nil {
		h.Files = source.NewFileSet()
	}
	if reg != nil && !reg.Frozen() {
		reg.Freeze()
	}

	idx := h.begin("environment")
	env, err := NewEnvironment(ctx, Bindings{
		Out:        h.Out,
		Source:     doc,
		Directives: exportDirectives(reg),
		Files:      h.Files,
	})
	h.end(idx, "")
	if err != nil {
		return exitcode.ContextFailure, &diag.Diagnostic{Kind: diag.KindHost, Message: "Error: " + err.Error()}
	}
	defer env.Release()

	if err := env.Enter(); err != nil {
		return exitcode.ContextFailure, &diag.Diagnostic{Kind: diag.KindHost, Message: "Error: " + err.Error()}
	}
	defer env.Exit()

	phases := []struct {
		phase  diag.Phase
		script Script
	}{
		{diag.PhaseBootstrap, h.Scripts.Bootstrap},
		{diag.PhaseDriver, h.Scripts.Driver},
	}
	for _, p := range phases {
		if d := h.runPhase(env, p.phase, p.script); d != nil {
			return exitcode.CompilationFailure, d
		}
	}
	return exitcode.Success, nil
}

func (h *Host) runPhase(env *Environment, phase diag.Phase, s Script) *diag.Diagnostic {
	span := trace.Begin(env.tracer, trace.ScopePhase, "phase:"+phase.String(), env.parent)
	idx := h.begin(phase.String())

	parent := env.parent
	env.parent = span.ID()
	res := Execute(env, s)
	env.parent = parent

	note := ""
	if res.Failed() {
		res.Diagnostic.Phase = phase
		note = fmt.Sprintf("%s failure", res.Diagnostic.Kind)
	}
	h.end(idx, note)
	span.End(note)
	return res.Diagnostic
}

func (h *Host) begin(name string) int {
	if h.Timer == nil {
		return -1
	}
	return h.Timer.Begin(name)
}

func (h *Host) end(idx int, note string) {
	if h.Timer != nil {
		h.Timer.End(idx, note)
	}
}

func exportDirectives(reg *directive.Registry) []directive.Entry {
	if reg == nil {
		return directive.Defaults()
	}
	return reg.Export()
}
