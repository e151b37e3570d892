package main

import (
	"fmt"
	"io"

	"lintjs/internal/version"
)

func printVersion(out io.Writer) {
	fmt.Fprintln(out, version.Line(programName))
}
