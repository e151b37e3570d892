package main

import (
	"fmt"
	"io"

	"lintjs/internal/ui"
)

const usageWidth = 100

var optionRows = []ui.Row{
	{Key: "-(v|version)", Text: "Show version."},
	{Key: "-(h|help)", Text: "Show this help."},
	{Key: "-config=PATH", Text: "Read settings from PATH instead of the nearest lintjs.toml."},
	{Key: "-engine=PATH", Text: "Run the engine script at PATH instead of the embedded syntax checker."},
	{Key: "-driver=PATH", Text: "Run the driver script at PATH instead of the embedded one."},
	{Key: "-color=MODE", Text: "Colorize diagnostics: auto, on or off."},
	{Key: "-timings", Text: "Print phase timings to stderr."},
	{Key: "-trace=PATH", Text: "Write trace events to PATH (- for stderr; .ndjson and .msgpack pick the format)."},
	{Key: "-trace-level=L", Text: "Trace level: off, error, phase, detail or debug."},
	{Key: "-trace-mode=M", Text: "Trace storage: stream, ring (dumped on failure) or both."},
	{Key: "-stdin-name=NAME", Text: "Display name of a file read from standard input."},
	{Key: "-cpu-profile=PATH", Text: "Write a CPU profile to PATH."},
	{Key: "-mem-profile=PATH", Text: "Write a heap profile to PATH on exit."},
	{Key: "-runtime-trace=PATH", Text: "Write a Go runtime trace to PATH."},
}

var directiveRows = []ui.Row{
	{Key: "--adsafe", Text: "true if ADsafe rules should be enforced. See http://www.ADsafe.org/"},
	{Key: "--bitwise", Text: "true if bitwise operators should be allowed."},
	{Key: "--browser", Text: "true if the standard browser globals should be predefined."},
	{Key: "--cap", Text: "true if uppercase HTML should be allowed."},
	{Key: "--confusion", Text: "true if types can be used inconsistently."},
	{Key: "--continue", Text: "true if the continue statement should be allowed."},
	{Key: "--css", Text: "true if CSS workarounds should be tolerated."},
	{Key: "--debug", Text: "true if debugger statements should be allowed. Set this option to false before going into production."},
	{Key: "--devel", Text: "true if browser globals that are useful in development should be predefined."},
	{Key: "--eqeq", Text: "true if the == and != operators should be tolerated."},
	{Key: "--es5", Text: "true if ES5 syntax should be allowed."},
	{Key: "--evil", Text: "true if eval should be allowed."},
	{Key: "--forin", Text: "true if unfiltered for in statements should be allowed."},
	{Key: "--fragment", Text: "true if HTML fragments should be allowed."},
	{Key: "--indent", Text: "The number of spaces used for indentation (default is 4). If 0, then no indentation checking takes place."},
	{Key: "--maxerr", Text: "The maximum number of warnings reported. (default is 50)"},
	{Key: "--maxlen", Text: "The maximum number of characters in a line."},
	{Key: "--newcap", Text: "true if Initial Caps with constructor functions is optional."},
	{Key: "--node", Text: "true if Node.js globals should be predefined."},
	{Key: "--nomen", Text: "true if names should not be checked for initial or trailing underbars."},
	{Key: "--on", Text: "true if HTML event handlers should be allowed."},
	{Key: "--passfail", Text: "true if the scan should stop on first error."},
	{Key: "--plusplus", Text: "true if ++ and -- should be allowed."},
	{Key: "--predef", Text: "Comma separated names of predefined global variables."},
	{Key: "--regexp", Text: "true if . and [^...] should be allowed in RegExp literals."},
	{Key: "--rhino", Text: "true if the Rhino environment globals should be predefined."},
	{Key: "--safe", Text: "true if the safe subset rules are enforced."},
	{Key: "--sloppy", Text: "true if the ES5 'use strict'; pragma is not required."},
	{Key: "--sub", Text: "true if subscript notation may be used for expressions better expressed in dot notation."},
	{Key: "--undef", Text: "true if variables can be declared out of order."},
	{Key: "--unparam", Text: "true if unused parameters should be tolerated."},
	{Key: "--vars", Text: "true if multiple var statement per function should be allowed."},
	{Key: "--white", Text: "true if strict whitespace rules should be ignored."},
	{Key: "--widget", Text: "true if the Yahoo Widgets globals should be predefined."},
	{Key: "--windows", Text: "true if the Windows globals should be predefined."},
}

func printUsage(out io.Writer) {
	fmt.Fprintf(out, "Usage:  %s [options] [directives] [file]\n\n", programName)
	fmt.Fprintln(out, "Reads standard input when no file is given.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options")
	fmt.Fprint(out, ui.Table(optionRows, usageWidth))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Directives. --name sets name to false, --name=value passes value as a string.")
	fmt.Fprint(out, ui.Table(directiveRows, usageWidth))
}
