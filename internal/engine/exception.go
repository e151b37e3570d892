package engine

import (
	"bytes"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/dop251/goja"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"

	"lintjs/internal/diag"
)

func parseDiagnostic(env *Environment, s Script, err error) *diag.Diagnostic {
	var list parser.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		list.Sort()
		first := list[0]
		return &diag.Diagnostic{
			Kind:     diag.KindParse,
			Message:  "SyntaxError: " + first.Message,
			Location: env.locate(s.Name, first.Position),
		}
	}
	var single *parser.Error
	if errors.As(err, &single) {
		return &diag.Diagnostic{
			Kind:     diag.KindParse,
			Message:  "SyntaxError: " + single.Message,
			Location: env.locate(s.Name, single.Position),
		}
	}
	return &diag.Diagnostic{Kind: diag.KindParse, Message: "SyntaxError: " + err.Error()}
}

// compileDiagnostic handles both returned compiler errors and the values
// CompileAST panics with.
func compileDiagnostic(env *Environment, s Script, x any) *diag.Diagnostic {
	d := &diag.Diagnostic{Kind: diag.KindCompile}
	var ce *goja.CompilerError
	switch e := x.(type) {
	case *goja.CompilerSyntaxError:
		d.Message = "SyntaxError: " + e.Message
		ce = &e.CompilerError
	case *goja.CompilerReferenceError:
		d.Message = "ReferenceError: " + e.Message
		ce = &e.CompilerError
	case error:
		d.Message = "Error: " + e.Error()
	default:
		d.Message = fmt.Sprintf("Error: %v", e)
	}
	if ce != nil && ce.File != nil {
		d.Location = env.locate(s.Name, ce.File.Position(ce.Offset))
	}
	return d
}

func runtimeDiagnostic(env *Environment, err error) *diag.Diagnostic {
	var ex *goja.Exception
	if !errors.As(err, &ex) {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return &diag.Diagnostic{Kind: diag.KindHost, Message: "Error: " + interrupted.Error()}
		}
		return &diag.Diagnostic{Kind: diag.KindRuntime, Message: "Error: " + err.Error()}
	}

	d := &diag.Diagnostic{Kind: diag.KindRuntime, Message: exceptionMessage(ex)}
	frames := ex.Stack()
	for i := range frames {
		pos := frames[i].Position()
		if pos.Line > 0 {
			d.Location = env.locate(frames[i].SrcName(), pos)
			break
		}
	}
	d.Stack = exceptionStack(ex)
	return d
}

func panicDiagnostic(r any) *diag.Diagnostic {
	msg := fmt.Sprint(r)
	if err, ok := r.(error); ok {
		msg = err.Error()
	}
	return &diag.Diagnostic{Kind: diag.KindHost, Message: "Error: host panic: " + msg}
}

func exceptionMessage(ex *goja.Exception) string {
	if v := ex.Value(); v != nil {
		return v.String()
	}
	return ex.Error()
}

// exceptionStack prefers the thrown object's own stack property and falls
// back to the frames recorded by the runtime.
func exceptionStack(ex *goja.Exception) string {
	if obj, ok := ex.Value().(*goja.Object); ok {
		if st := obj.Get("stack"); st != nil && !goja.IsUndefined(st) && !goja.IsNull(st) {
			if s, ok := st.Export().(string); ok && s != "" {
				return s
			}
		}
	}
	frames := ex.Stack()
	if len(frames) == 0 {
		return ""
	}
	var b bytes.Buffer
	for i := range frames {
		b.WriteString("\tat ")
		frames[i].Write(&b)
		b.WriteByte('\n')
	}
	return b.String()
}

// locate turns a 1-based goja position into a diagnostic location, pulling
// the source line from the compiled script registered under the position's
// file name.
func (e *Environment) locate(fallback string, pos file.Position) *diag.Location {
	if pos.Line <= 0 {
		return nil
	}
	name := pos.Filename
	if name == "" {
		name = fallback
	}

	var line string
	if f, ok := e.files.GetByName(name); ok {
		if n, err := safecast.Conv[uint32](pos.Line); err == nil {
			line = f.GetLine(n)
		}
	}

	// goja columns count bytes; carets are drawn in characters
	startByte := max(pos.Column-1, 0)
	endByte := tokenEnd(line, startByte)
	return &diag.Location{
		Resource:    name,
		Line:        pos.Line,
		StartColumn: charColumn(line, startByte),
		EndColumn:   charColumn(line, endByte),
		SourceLine:  line,
	}
}

// charColumn converts a byte offset in line to a character offset. Offsets
// past the end of the line count one character per byte.
func charColumn(line string, offset int) int {
	if offset <= len(line) {
		return utf8.RuneCountInString(line[:offset])
	}
	return utf8.RuneCountInString(line) + offset - len(line)
}

// tokenEnd returns the exclusive end byte offset of the token at start: a
// run of identifier characters, or else a single character. The result is
// always greater than start.
func tokenEnd(line string, start int) int {
	if start >= len(line) {
		return start + 1
	}
	end := start
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !isIdentRune(r) {
			break
		}
		end += size
	}
	if end == start {
		_, size := utf8.DecodeRuneInString(line[start:])
		end = start + size
	}
	return end
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
