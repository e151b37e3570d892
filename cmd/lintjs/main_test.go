package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lintjs/internal/version"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := runInvocation(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersionShortCircuits(t *testing.T) {
	for _, args := range [][]string{
		{"-v"},
		{"-version"},
		{"--evil", "-v", "missing.js"},
	} {
		code, out, _ := runCLI(t, "", args...)
		if code != 0 {
			t.Errorf("%v: exit %d, want 0", args, code)
		}
		if !strings.HasPrefix(out, programName+" ") || strings.Contains(out, "Usage") {
			t.Errorf("%v: output %q", args, out)
		}
	}
}

func TestHelp(t *testing.T) {
	code, out, _ := runCLI(t, "", "-h")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"Usage:  lintjs", "-(v|version)", "--maxerr", "--windows"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

func TestEmptyStdinPrintsUsage(t *testing.T) {
	t.Chdir(t.TempDir())
	code, out, _ := runCLI(t, "")
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if !strings.HasPrefix(out, "Usage:") {
		t.Errorf("stdout = %q", out)
	}
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "myfile.js"), []byte("var ok = true;\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "", "--indent=2", "--evil", "myfile.js", "ignored.js")
	if code != 0 {
		t.Fatalf("exit %d\nstdout: %s\nstderr: %s", code, out, errOut)
	}
	if !strings.Contains(out, "myfile.js is good!.") {
		t.Errorf("stdout = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color must be off when stdout is not a terminal")
	}
}

func TestSyntaxErrorInNamedScript(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for name, body := range map[string]string{
		"myfile.js": "var a = 1;\nvar b = 2;\nvar new = 3;\n",
		"target.js": "1;\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	code, out, _ := runCLI(t, "", "-engine=myfile.js", "target.js")
	if code != 1 {
		t.Fatalf("exit %d, want 1\n%s", code, out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 3 || !strings.HasPrefix(lines[0], "myfile.js:3: ") {
		t.Fatalf("stdout = %q", out)
	}
	if lines[1] != "var new = 3;" || lines[2] != "    ^^^" {
		t.Errorf("source and caret lines = %q, %q", lines[1], lines[2])
	}
}

func TestBadOptionValuesAreWarnings(t *testing.T) {
	t.Chdir(t.TempDir())
	code, _, errOut := runCLI(t, "x", "-color=sometimes", "-timings=maybe")
	if code != 0 {
		t.Fatalf("exit %d, want 0\nstderr: %s", code, errOut)
	}
	for _, want := range []string{"warning: ignoring -color=sometimes", "warning: ignoring -timings=maybe"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestMissingFileWithBadOptionIsNoSource(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	code, out, _ := runCLI(t, "", "-timings=maybe", filepath.Join(dir, "missing.js"))
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if !strings.HasPrefix(out, "Usage:") {
		t.Errorf("stdout = %q", out)
	}
}

func TestBrokenConfigIsContextFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "lintjs.toml"), []byte("[output\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	code, out, _ := runCLI(t, "1;")
	if code != 3 {
		t.Fatalf("exit %d, want 3", code)
	}
	if !strings.Contains(out, "cannot create execution environment") {
		t.Errorf("stdout = %q", out)
	}
}

func TestTraceToStderr(t *testing.T) {
	t.Chdir(t.TempDir())
	code, _, errOut := runCLI(t, "1;", "-trace=-", "-trace-level=detail")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"invocation", "phase:bootstrap", "phase:driver"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("trace missing %q:\n%s", want, errOut)
		}
	}
}

func TestRootCommandPassesDirectives(t *testing.T) {
	t.Chdir(t.TempDir())
	code := -1
	cmd := newRootCmd(&code)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"--white", "-v"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if code != 0 {
		t.Errorf("exit %d", code)
	}
	if got, want := strings.TrimSpace(out.String()), version.Line(programName); got != want {
		t.Errorf("output %q, want %q", got, want)
	}
}
