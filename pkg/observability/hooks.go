// Package observability lets the binary watch inspections and renderings
// without the format adapters or renderers knowing who is listening.
//
// Hooks are process-wide and default to no-ops. Register them once before
// any work starts:
//
//	observability.SetInspectHooks(cli.LogHooks{})
//
// Instrumented code brackets its work with a start call that returns the
// matching finish function:
//
//	done := observability.StartInspect(ctx, "hdf5", path)
//	root, err := inspect(path)
//	done(err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// InspectHooks receives an event before and after a file is inspected.
type InspectHooks interface {
	OnInspectStart(ctx context.Context, format, path string)
	OnInspectComplete(ctx context.Context, format, path string, duration time.Duration, err error)
}

// RenderHooks receives an event before and after a tree is drawn. The start
// event carries the node count; the completion carries the output size in
// bytes.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

type NoopInspectHooks struct{}

func (NoopInspectHooks) OnInspectStart(context.Context, string, string) {}
func (NoopInspectHooks) OnInspectComplete(context.Context, string, string, time.Duration, error) {
}

type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// Interfaces are boxed so atomic.Pointer always sees one concrete type.
type (
	inspectBox struct{ h InspectHooks }
	renderBox  struct{ h RenderHooks }
)

var (
	inspect atomic.Pointer[inspectBox]
	render  atomic.Pointer[renderBox]
)

func init() { Reset() }

// SetInspectHooks replaces the inspect hooks. A nil h is ignored.
func SetInspectHooks(h InspectHooks) {
	if h != nil {
		inspect.Store(&inspectBox{h})
	}
}

// SetRenderHooks replaces the render hooks. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	if h != nil {
		render.Store(&renderBox{h})
	}
}

func Inspect() InspectHooks { return inspect.Load().h }
func Render() RenderHooks   { return render.Load().h }

// Reset puts the no-op hooks back.
func Reset() {
	inspect.Store(&inspectBox{NoopInspectHooks{}})
	render.Store(&renderBox{NoopRenderHooks{}})
}

// StartInspect fires OnInspectStart and returns a function that fires
// OnInspectComplete with the elapsed time. The hooks in place at start
// receive both events.
func StartInspect(ctx context.Context, format, path string) func(error) {
	h := Inspect()
	h.OnInspectStart(ctx, format, path)
	start := time.Now()
	return func(err error) {
		h.OnInspectComplete(ctx, format, path, time.Since(start), err)
	}
}

// StartRender is the rendering counterpart of StartInspect.
func StartRender(ctx context.Context, format string, nodeCount int) func(size int, err error) {
	h := Render()
	h.OnRenderStart(ctx, format, nodeCount)
	start := time.Now()
	return func(size int, err error) {
		h.OnRenderComplete(ctx, format, size, time.Since(start), err)
	}
}
