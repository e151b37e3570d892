package main

import (
	"fmt"
	"io"

	"lintjs/internal/prof"
)

// setupProfiling starts the requested profilers. The returned cleanup is
// safe to call more than once.
func setupProfiling(paths prof.Paths, stderr io.Writer) (func(), error) {
	if !paths.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(paths)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		}
	}, nil
}
