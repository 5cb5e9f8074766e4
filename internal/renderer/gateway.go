// Package renderer is the boundary to the markdown-to-HTML converter.
//
// The converter is a black box: the session controller only ever sees the
// Gateway interface and calls it synchronously. Converters that finish
// initializing after page load are handled by an Awaiter, which the session
// resolves once during startup before the first render.
package renderer

import (
	"context"
	"sync"
	"time"
)

// Gateway converts raw markdown text to sanitized preview markup.
type Gateway interface {
	Render(text string) string
}

// Func adapts a bare conversion function to the Gateway interface.
type Func func(text string) string

func (f Func) Render(text string) string { return f(text) }

// Awaiter resolves the gateway once the underlying converter is available.
type Awaiter interface {
	Await(ctx context.Context) (Gateway, error)
}

type ready struct {
	g Gateway
}

// Ready wraps an already-initialized gateway in an Awaiter that resolves
// immediately.
func Ready(g Gateway) Awaiter {
	return ready{g: g}
}

func (r ready) Await(ctx context.Context) (Gateway, error) {
	return r.g, nil
}

// Signal is a one-shot readiness signal. The converter's host resolves it
// exactly once; sessions block in Await until then.
type Signal struct {
	once sync.Once
	done chan struct{}
	g    Gateway
}

func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Resolve publishes the gateway. Calls after the first are ignored.
func (s *Signal) Resolve(g Gateway) {
	s.once.Do(func() {
		s.g = g
		close(s.done)
	})
}

func (s *Signal) Await(ctx context.Context) (Gateway, error) {
	select {
	case <-s.done:
		return s.g, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type poller struct {
	probe    func() (Gateway, bool)
	interval time.Duration
}

// Poll returns an Awaiter that probes for the converter on a fixed interval
// until it appears. This mirrors integrations where the converter is set on
// a global by an asynchronously loaded module.
func Poll(probe func() (Gateway, bool), interval time.Duration) Awaiter {
	return poller{probe: probe, interval: interval}
}

func (p poller) Await(ctx context.Context) (Gateway, error) {
	if g, ok := p.probe(); ok {
		return g, nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if g, ok := p.probe(); ok {
				return g, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
