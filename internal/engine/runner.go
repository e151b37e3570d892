package engine

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/dop251/goja/parser"

	"lintjs/internal/diag"
	"lintjs/internal/trace"
)

// Result is the outcome of one script: a value or a diagnostic, never both.
type Result struct {
	Value      goja.Value
	Diagnostic *diag.Diagnostic
}

// Failed reports whether the script did not complete.
func (r Result) Failed() bool {
	return r.Diagnostic != nil
}

// Execute parses, compiles and runs s once inside env. A parse or compile
// failure returns before anything runs. A run that completes without a value
// yields boolean true. Execute does not panic: Go panics raised while the
// script runs are converted into a host diagnostic.
func Execute(env *Environment, s Script) (res Result) {
	if !env.Entered() {
		return Result{Diagnostic: &diag.Diagnostic{
			Kind:    diag.KindHost,
			Message: fmt.Sprintf("Error: %s: execution environment is not entered", s.Name),
		}}
	}

	span := trace.Begin(env.tracer, trace.ScopeScript, "script:"+s.Name, env.parent)
	defer func() {
		detail := "ok"
		if res.Failed() {
			detail = res.Diagnostic.Kind.String()
		}
		span.End(detail)
	}()

	env.files.AddVirtual(s.Name, []byte(s.Text))

	prg, d := compileScript(env, s)
	if d != nil {
		return Result{Diagnostic: d}
	}
	return runProgram(env, prg)
}

func compileScript(env *Environment, s Script) (prg *goja.Program, d *diag.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			prg = nil
			d = compileDiagnostic(env, s, r)
		}
	}()

	tree, err := parser.ParseFile(nil, s.Name, s.Text, 0, parser.WithDisableSourceMaps)
	if err != nil {
		return nil, parseDiagnostic(env, s, err)
	}
	prg, err = goja.CompileAST(tree, false)
	if err != nil {
		return nil, compileDiagnostic(env, s, err)
	}
	return prg, nil
}

func runProgram(env *Environment, prg *goja.Program) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Diagnostic: panicDiagnostic(r)}
		}
	}()

	v, err := env.vm.RunProgram(prg)
	if err != nil {
		return Result{Diagnostic: runtimeDiagnostic(env, err)}
	}
	if v == nil || goja.IsUndefined(v) {
		v = env.vm.ToValue(true)
	}
	return Result{Value: v}
}
