package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"lintjs/internal/diag"
)

type palette struct {
	header *color.Color
	caret  *color.Color
	stack  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		header: color.New(color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		stack:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.header, p.caret, p.stack} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty renders d in the classic compiler layout:
//
//	<resource>:<line>: <message>
//	<source line>
//	<start spaces><(end-start) carets>
//	<stack trace>
//
// Without location only the message is printed. Columns are printed as given.
func Pretty(w io.Writer, d *diag.Diagnostic, opts PrettyOpts) {
	if d == nil {
		return
	}
	p := newPalette(opts.Color)

	if !d.HasLocation() {
		fmt.Fprintln(w, d.Message)
		return
	}
	loc := d.Location

	p.header.Fprintf(w, "%s:%d:", loc.Resource, loc.Line)
	fmt.Fprintf(w, " %s\n", d.Message)
	fmt.Fprintln(w, loc.SourceLine)
	fmt.Fprintln(w, CaretLine(*loc, p.caret))

	if opts.ShowStack && d.Stack != "" {
		p.stack.Fprintln(w, strings.TrimRight(d.Stack, "\n"))
	}
}

// CaretLine builds the indicator line: StartColumn spaces followed by
// Width() carets. A nil painter leaves the carets unstyled.
func CaretLine(loc diag.Location, painter *color.Color) string {
	start := loc.StartColumn
	if start < 0 {
		start = 0
	}
	carets := strings.Repeat("^", loc.Width())
	if painter != nil {
		carets = painter.Sprint(carets)
	}
	return strings.Repeat(" ", start) + carets
}
