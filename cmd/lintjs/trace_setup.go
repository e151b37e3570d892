package main

import (
	"context"
	"fmt"
	"io"

	"lintjs/internal/driver"
	"lintjs/internal/trace"
)

// setupTracing builds the tracer described by settings and attaches it to
// ctx. The returned cleanup stops the heartbeat and flushes the tracer.
func setupTracing(ctx context.Context, settings driver.Settings, stderr io.Writer) (context.Context, func(), error) {
	if settings.TraceLevel == trace.LevelOff {
		return trace.WithTracer(ctx, trace.Nop), func() {}, nil
	}

	cfg := trace.Config{
		Level:      settings.TraceLevel,
		Mode:       settings.TraceMode,
		OutputPath: settings.TraceOutput,
		Heartbeat:  settings.Heartbeat,
	}
	if settings.TraceOutput == "-" || settings.TraceOutput == "" {
		cfg.Output = stderr
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx = trace.WithTracer(ctx, tracer)

	heartbeat := trace.StartHeartbeat(ctx, tracer, settings.Heartbeat)

	cleanup := func() {
		heartbeat.Stop()

		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(stderr, "trace: flush error: %v\n", err)
		}
		if cfg.Output == nil {
			if err := tracer.Close(); err != nil {
				fmt.Fprintf(stderr, "trace: close error: %v\n", err)
			}
		}
	}
	return ctx, cleanup, nil
}
