package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lintjs/internal/directive"
	"lintjs/internal/driver"
	"lintjs/internal/exitcode"
)

const programName = "lintjs"

// newRootCmd builds the single lintjs command. Flag parsing is disabled:
// "--name" tokens are analysis directives, not flags, and are split by
// directive.ParseArgs instead.
func newRootCmd(exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:                programName + " [options] [directives] [file]",
		Short:              "Run a JSLint-style engine over a JavaScript file",
		Long:               `lintjs runs a JSLint-style analysis engine over a JavaScript file or standard input and reports engine failures with source positions.`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*exitCode = runInvocation(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}
}

// runInvocation is the whole CLI behind cobra: it returns the exit status.
func runInvocation(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	inv := directive.ParseArgs(args)
	switch {
	case inv.ShowVersion:
		printVersion(stdout)
		return exitcode.Success.Code()
	case inv.ShowHelp:
		printUsage(stdout)
		return exitcode.Success.Code()
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	// Setup failures are handed to the driver, which reports them only after
	// the source has loaded: a missing source is always NoSource.
	settings, setupErr := driver.ResolveSettings(inv, wd)
	for _, w := range settings.Warnings {
		fmt.Fprintf(stderr, "%s: warning: %s\n", programName, w)
	}

	if setupErr == nil {
		stopProfiling, err := setupProfiling(settings.Profile, stderr)
		if err != nil {
			setupErr = err
		} else {
			defer stopProfiling()
		}
	}

	if setupErr == nil {
		traceCtx, cleanup, err := setupTracing(ctx, settings, stderr)
		if err != nil {
			setupErr = err
		} else {
			ctx = traceCtx
			defer cleanup()
		}
	}

	outcome := driver.Run(ctx, driver.Request{
		Invocation: inv,
		Settings:   settings,
		Streams:    driver.Streams{In: stdin, Out: stdout, Err: stderr},
		Color:      useColor(settings.Color, stdout),
		Usage:      printUsage,
		SetupErr:   setupErr,
	})
	return outcome.Code()
}

func main() {
	exitCode := exitcode.Success.Code()
	rootCmd := newRootCmd(&exitCode)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(exitcode.ContextFailure.Code())
	}
	os.Exit(exitCode)
}
