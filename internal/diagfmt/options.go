package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowStack bool // печатать stack trace, если он есть
}

// DefaultPrettyOpts matches the plain terminal rendering.
func DefaultPrettyOpts() PrettyOpts {
	return PrettyOpts{ShowStack: true}
}
