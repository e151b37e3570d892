// Package trace provides the structured event log of the lintjs harness.
//
// Tracing records driver steps, script phases and script compile/run steps
// so that a slow or hanging engine script can be diagnosed after the fact.
//
// # Usage
//
// Enable tracing with harness options or the config file:
//
//	lintjs -trace=- -trace-level=phase myfile.js
//
// # Architecture
//
//   - nopTracer: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a phase fails
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver steps and script phases
//   - LevelDetail: compile/run steps inside a phase
//   - LevelDebug: everything including print() calls from scripts
//
// # Formats
//
// Text for humans, NDJSON for tools, msgpack for compact binary logs. The
// format is picked from the output file extension (.ndjson, .msgpack) unless
// set explicitly.
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "bootstrap", parentID)
//	defer span.End("")
package trace
