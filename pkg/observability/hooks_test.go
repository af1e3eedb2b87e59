package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type inspectRecorder struct {
	events []string
	took   time.Duration
	err    error
}

func (r *inspectRecorder) OnInspectStart(_ context.Context, format, path string) {
	r.events = append(r.events, "start "+format+" "+path)
}

func (r *inspectRecorder) OnInspectComplete(_ context.Context, format, path string, d time.Duration, err error) {
	r.events = append(r.events, "complete "+format+" "+path)
	r.took, r.err = d, err
}

type renderRecorder struct {
	nodes, size int
	err         error
}

func (r *renderRecorder) OnRenderStart(_ context.Context, _ string, n int) { r.nodes = n }
func (r *renderRecorder) OnRenderComplete(_ context.Context, _ string, size int, _ time.Duration, err error) {
	r.size, r.err = size, err
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Inspect().(NoopInspectHooks); !ok {
		t.Errorf("Inspect() = %T, want NoopInspectHooks", Inspect())
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Errorf("Render() = %T, want NoopRenderHooks", Render())
	}
	// Must not panic with nothing registered.
	StartInspect(context.Background(), "npy", "a.npy")(nil)
	StartRender(context.Background(), "svg", 3)(10, nil)
}

func TestStartInspect(t *testing.T) {
	t.Cleanup(Reset)
	rec := &inspectRecorder{}
	SetInspectHooks(rec)

	failure := errors.New("bad magic")
	done := StartInspect(context.Background(), "npy", "a.npy")
	time.Sleep(2 * time.Millisecond)
	done(failure)

	want := []string{"start npy a.npy", "complete npy a.npy"}
	if len(rec.events) != 2 || rec.events[0] != want[0] || rec.events[1] != want[1] {
		t.Errorf("events = %q, want %q", rec.events, want)
	}
	if rec.err != failure {
		t.Errorf("err = %v, want %v", rec.err, failure)
	}
	if rec.took < 2*time.Millisecond {
		t.Errorf("duration = %v, want at least 2ms", rec.took)
	}
}

func TestStartRender(t *testing.T) {
	t.Cleanup(Reset)
	rec := &renderRecorder{}
	SetRenderHooks(rec)

	StartRender(context.Background(), "svg", 7)(4096, nil)
	if rec.nodes != 7 || rec.size != 4096 || rec.err != nil {
		t.Errorf("got nodes=%d size=%d err=%v, want 7 4096 <nil>", rec.nodes, rec.size, rec.err)
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)
	rec := &inspectRecorder{}
	SetInspectHooks(rec)
	SetInspectHooks(nil)
	SetRenderHooks(nil)

	if Inspect() != rec {
		t.Error("SetInspectHooks(nil) replaced the registered hooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("SetRenderHooks(nil) replaced the no-op default")
	}
}

func TestFinishUsesHooksFromStart(t *testing.T) {
	t.Cleanup(Reset)
	first := &inspectRecorder{}
	SetInspectHooks(first)
	done := StartInspect(context.Background(), "hdf5", "x.h5")

	SetInspectHooks(&inspectRecorder{})
	done(nil)

	if len(first.events) != 2 {
		t.Errorf("first hooks saw %d events, want 2", len(first.events))
	}
}
