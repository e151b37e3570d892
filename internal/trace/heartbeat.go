package trace

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Heartbeat periodically emits heartbeat events so a hung engine script is
// visible in the trace: heartbeats keep coming while no SpanEnd does.
type Heartbeat struct {
	cancel context.CancelFunc
	g      *errgroup.Group
	beats  uint64
}

// StartHeartbeat starts a heartbeat goroutine bound to ctx.
// Returns nil when tracing is off or interval is not positive.
func StartHeartbeat(ctx context.Context, tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	h := &Heartbeat{cancel: cancel, g: g}

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				h.beats++
				tracer.Emit(&Event{
					Time:   time.Now(),
					Seq:    NextSeq(),
					Kind:   KindHeartbeat,
					Scope:  ScopeDriver,
					GID:    getGoroutineID(),
					Name:   "heartbeat",
					Detail: fmt.Sprintf("#%d", h.beats),
				})
			case <-gctx.Done():
				return nil
			}
		}
	})

	return h
}

// Stop ends the heartbeat goroutine and waits for it. Safe on nil.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.cancel()
	_ = h.g.Wait() //nolint:errcheck // the loop never returns an error
}

// Beats reports how many heartbeats were emitted. Call after Stop.
func (h *Heartbeat) Beats() uint64 {
	if h == nil {
		return 0
	}
	return h.beats
}
