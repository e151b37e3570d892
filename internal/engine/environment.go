package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dop251/goja"

	"lintjs/internal/directive"
	"lintjs/internal/source"
	"lintjs/internal/trace"
)

// Names of the four host bindings.
const (
	BindingPrint    = "print"
	BindingSource   = "source"
	BindingOption   = "option"
	BindingFilename = "filename"
)

var (
	// ErrContext reports that an execution environment could not be built.
	ErrContext = errors.New("cannot create execution environment")
	// ErrReleased reports use of an environment after Release.
	ErrReleased = errors.New("execution environment released")
)

// Bindings is everything the host exposes to scripts.
type Bindings struct {
	// Out receives print() output; nil means os.Stdout.
	Out        io.Writer
	Source     *source.File
	Directives []directive.Entry
	// Files collects compiled scripts for source line lookups; nil creates
	// a private set.
	Files *source.FileSet
}

// Environment is one isolated goja runtime with the host bindings installed.
// It is not safe for concurrent use.
type Environment struct {
	vm       *goja.Runtime
	out      io.Writer
	files    *source.FileSet
	tracer   trace.Tracer
	parent   uint64
	depth    int
	released bool
}

// NewEnvironment builds a fresh runtime and installs exactly four globals:
// print, source, option and filename. Every failure wraps ErrContext.
func NewEnvironment(ctx context.Context, b Bindings) (env *Environment, err error) {
	defer func() {
		if r := recover(); r != nil {
			env = nil
			err = fmt.Errorf("%w: %v", ErrContext, r)
		}
	}()

	if b.Source == nil {
		return nil, fmt.Errorf("%w: no source document", ErrContext)
	}
	if b.Out == nil {
		b.Out = os.Stdout
	}
	if b.Files == nil {
		b.Files = source.NewFileSet()
	}

	env = &Environment{
		vm:     goja.New(),
		out:    b.Out,
		files:  b.Files,
		tracer: trace.FromContext(ctx),
		parent: trace.CurrentSpan(ctx).SpanID,
	}

	option, err := env.newOptionObject(b.Directives)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContext, err)
	}

	globals := []struct {
		name  string
		value any
	}{
		{BindingPrint, env.print},
		{BindingSource, b.Source.Text()},
		{BindingOption, option},
		{BindingFilename, b.Source.Name},
	}
	for _, g := range globals {
		if err := env.vm.Set(g.name, g.value); err != nil {
			return nil, fmt.Errorf("%w: bind %s: %w", ErrContext, g.name, err)
		}
	}
	return env, nil
}

// newOptionObject exposes the directives as one plain object whose
// enumeration order is the registry order. Drivers may convert the values in
// place; the registry they came from stays frozen on the Go side.
func (e *Environment) newOptionObject(entries []directive.Entry) (*goja.Object, error) {
	obj := e.vm.NewObject()
	for _, ent := range entries {
		val := e.vm.ToValue(ent.Value.Interface())
		if err := obj.DefineDataProperty(ent.Name, val, goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_TRUE); err != nil {
			return nil, fmt.Errorf("option %q: %w", ent.Name, err)
		}
	}
	return obj, nil
}

// print writes its arguments separated by single spaces and a newline.
func (e *Environment) print(call goja.FunctionCall) goja.Value {
	buf := make([]byte, 0, 64)
	for i, arg := range call.Arguments {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, arg.String()...)
	}
	buf = append(buf, '\n')

	trace.Point(e.tracer, trace.ScopeBinding, BindingPrint, fmt.Sprintf("%d bytes", len(buf)), e.parent)

	if _, err := e.out.Write(buf); err != nil {
		panic(e.vm.NewGoError(fmt.Errorf("print: %w", err)))
	}
	if f, ok := e.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			panic(e.vm.NewGoError(fmt.Errorf("print: %w", err)))
		}
	}
	return goja.Undefined()
}

// Enter makes the environment the active execution scope.
// Every successful Enter must be paired with exactly one Exit.
func (e *Environment) Enter() error {
	if e == nil || e.released {
		return ErrReleased
	}
	e.depth++
	return nil
}

// Exit leaves the execution scope entered by the matching Enter.
func (e *Environment) Exit() {
	if e.depth == 0 {
		panic("engine: Exit without matching Enter")
	}
	e.depth--
}

// Depth reports how many Enter calls are still open.
func (e *Environment) Depth() int {
	if e == nil {
		return 0
	}
	return e.depth
}

// Entered reports whether a script may run now.
func (e *Environment) Entered() bool {
	return e != nil && !e.released && e.depth > 0
}

// Release drops the runtime. The environment cannot be entered again.
func (e *Environment) Release() {
	if e == nil || e.released {
		return
	}
	if e.depth != 0 {
		panic(fmt.Sprintf("engine: Release with %d open scopes", e.depth))
	}
	e.released = true
	e.vm = nil
}

// Files returns the set holding the scripts compiled in this environment.
func (e *Environment) Files() *source.FileSet {
	return e.files
}

// Global returns the value bound to name, or nil when absent.
func (e *Environment) Global(name string) goja.Value {
	if e == nil || e.vm == nil {
		return nil
	}
	return e.vm.Get(name)
}
