package driver

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lintjs/internal/directive"
	"lintjs/internal/exitcode"
	"lintjs/internal/trace"
)

type runResult struct {
	outcome exitcode.Outcome
	stdout  string
	stderr  string
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// invoke runs the harness in dir with argv and stdin, the way main does.
func invoke(t *testing.T, ctx context.Context, dir string, stdin string, args ...string) runResult {
	t.Helper()
	inv := directive.ParseArgs(args)
	settings, err := ResolveSettings(inv, dir)
	var out, errOut bytes.Buffer
	outcome := Run(ctx, Request{
		Invocation: inv,
		Settings:   settings,
		Streams:    Streams{In: strings.NewReader(stdin), Out: &out, Err: &errOut},
		Usage:      func(w io.Writer) { io.WriteString(w, "Usage: lintjs [options] [directives] file\n") },
		SetupErr:   err,
	})
	return runResult{outcome: outcome, stdout: out.String(), stderr: errOut.String()}
}

func TestRunGoodFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "myfile.js", "var greeting = \"hello\";\n")

	res := invoke(t, context.Background(), dir, "", "--indent=2", "--evil", path)
	if res.outcome != exitcode.Success || res.outcome.Code() != 0 {
		t.Fatalf("outcome = %v\nstdout: %s\nstderr: %s", res.outcome, res.stdout, res.stderr)
	}
	if !strings.Contains(res.stdout, path+" is good!.") {
		t.Errorf("stdout missing verdict:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "indent: 2 ") || !strings.Contains(res.stdout, "evil: false ") {
		t.Errorf("stdout missing directive dump:\n%s", res.stdout)
	}
}

func TestRunStdin(t *testing.T) {
	res := invoke(t, context.Background(), t.TempDir(), "var a = 1;\n", "-stdin-name=piped.js")
	if res.outcome != exitcode.Success {
		t.Fatalf("outcome = %v\n%s%s", res.outcome, res.stdout, res.stderr)
	}
	if !strings.Contains(res.stdout, "piped.js is good!.") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestRunNoSource(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.js", "")

	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"empty stdin", "", nil},
		{"missing file", "", []string{filepath.Join(dir, "missing.js")}},
		{"empty file", "", []string{empty}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := invoke(t, context.Background(), dir, tt.stdin, tt.args...)
			if res.outcome != exitcode.NoSource || res.outcome.Code() != 2 {
				t.Fatalf("outcome = %v, want no source", res.outcome)
			}
			if !strings.HasPrefix(res.stdout, "Usage: ") {
				t.Errorf("usage not printed, stdout = %q", res.stdout)
			}
		})
	}
}

func TestRunBootstrapSyntaxError(t *testing.T) {
	dir := t.TempDir()
	engine := writeFile(t, dir, "engine.js", "var a = 1;\nvar b = 2;\nvar new = 3;\n")
	target := writeFile(t, dir, "x.js", "1;\n")

	res := invoke(t, context.Background(), dir, "", "-engine="+engine, target)
	if res.outcome != exitcode.CompilationFailure || res.outcome.Code() != 1 {
		t.Fatalf("outcome = %v, want compilation failure", res.outcome)
	}
	want := engine + ":3: SyntaxError: "
	if !strings.HasPrefix(res.stdout, want) {
		t.Errorf("stdout = %q, want prefix %q", res.stdout, want)
	}
	if !strings.Contains(res.stdout, "\nvar new = 3;\n    ^^^\n") {
		t.Errorf("missing source line and carets:\n%s", res.stdout)
	}
	if strings.Contains(res.stdout, "/*jslint") {
		t.Error("driver phase ran after bootstrap failure")
	}
}

func TestRunMissingEngineIsContextFailure(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "x.js", "1;\n")

	res := invoke(t, context.Background(), dir, "", "-engine="+filepath.Join(dir, "nope.js"), target)
	if res.outcome != exitcode.ContextFailure || res.outcome.Code() != 3 {
		t.Fatalf("outcome = %v, want context failure", res.outcome)
	}
	if !strings.Contains(res.stdout, "cannot create execution environment") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestRunConfigDirectives(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lintjs.toml", "[directives]\nmaxlen = 100\nindent = 8\n")
	target := writeFile(t, dir, "x.js", "1;\n")

	res := invoke(t, context.Background(), dir, "", "--indent=3", target)
	if res.outcome != exitcode.Success {
		t.Fatalf("outcome = %v\n%s", res.outcome, res.stdout)
	}
	if !strings.Contains(res.stdout, "maxlen: 100 ") {
		t.Errorf("config directive missing:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "indent: 3 ") {
		t.Errorf("command line must override config:\n%s", res.stdout)
	}
}

func TestRunTimings(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "x.js", "1;\n")

	res := invoke(t, context.Background(), dir, "", "-timings", target)
	if res.outcome != exitcode.Success {
		t.Fatalf("outcome = %v", res.outcome)
	}
	for _, phase := range []string{"timings:", "load", "environment", "bootstrap", "driver", "total"} {
		if !strings.Contains(res.stderr, phase) {
			t.Errorf("timings missing %q:\n%s", phase, res.stderr)
		}
	}
}

func TestRunDumpsRingOnFailure(t *testing.T) {
	dir := t.TempDir()
	engine := writeFile(t, dir, "engine.js", "throw new Error('no engine');\n")
	target := writeFile(t, dir, "x.js", "1;\n")

	ring := trace.NewRingTracer(64, trace.LevelError)
	ctx := trace.WithTracer(context.Background(), ring)

	res := invoke(t, ctx, dir, "", "-engine="+engine, target)
	if res.outcome != exitcode.CompilationFailure {
		t.Fatalf("outcome = %v", res.outcome)
	}
	if !strings.Contains(res.stderr, "trace (last events):") || !strings.Contains(res.stderr, "phase:bootstrap") {
		t.Errorf("ring not dumped:\n%s", res.stderr)
	}
	if !strings.Contains(res.stdout, "Error: no engine") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestRunMissingSourceOutranksSetupFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lintjs.toml", "[output]\ncolor = \"sometimes\"\n")
	missing := filepath.Join(dir, "missing.js")

	tests := []struct {
		name string
		args []string
	}{
		{"broken config", []string{missing}},
		{"broken config and bad options", []string{"-timings=maybe", "-color=purple", "-trace-level=loud", missing}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := invoke(t, context.Background(), dir, "", tt.args...)
			if res.outcome != exitcode.NoSource || res.outcome.Code() != 2 {
				t.Fatalf("outcome = %v, want no source", res.outcome)
			}
			if !strings.HasPrefix(res.stdout, "Usage:") {
				t.Errorf("stdout = %q", res.stdout)
			}
		})
	}
}

func TestRunBrokenConfigIsContextFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lintjs.toml", "[output]\ncolor = \"sometimes\"\n")
	target := writeFile(t, dir, "x.js", "1;\n")

	res := invoke(t, context.Background(), dir, "", target)
	if res.outcome != exitcode.ContextFailure {
		t.Fatalf("outcome = %v, want context failure", res.outcome)
	}
	if !strings.Contains(res.stdout, "Error: cannot create execution environment: ") ||
		!strings.Contains(res.stdout, "[output].color") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestRunTraceModeBothDumpsWhenStreamIsAFile(t *testing.T) {
	dir := t.TempDir()
	engine := writeFile(t, dir, "engine.js", "throw new Error('no engine');\n")
	target := writeFile(t, dir, "x.js", "1;\n")

	var stream bytes.Buffer
	tracer := trace.NewMultiTracer(trace.LevelPhase,
		trace.NewStreamTracer(&stream, trace.LevelPhase, trace.FormatText),
		trace.NewRingTracer(64, trace.LevelPhase))
	ctx := trace.WithTracer(context.Background(), tracer)

	out := filepath.Join(dir, "trace.log")
	res := invoke(t, ctx, dir, "", "-trace-mode=both", "-trace="+out, "-engine="+engine, target)
	if res.outcome != exitcode.CompilationFailure {
		t.Fatalf("outcome = %v", res.outcome)
	}
	if !strings.Contains(res.stderr, "trace (last events):") {
		t.Errorf("ring not dumped:\n%s", res.stderr)
	}
	if !strings.Contains(stream.String(), "phase:bootstrap") {
		t.Errorf("stream missing phase span:\n%s", stream.String())
	}
}
