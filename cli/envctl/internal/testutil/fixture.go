package testutil

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"envkit/cli/envctl/internal/execx"
)

// Recorder is an execx.Executor that records every invocation instead of
// spawning a process. It replies with Result for each call.
type Recorder struct {
	Calls []execx.Spec
	// Deadlines holds the context deadline of each call, zero when unbounded.
	Deadlines []time.Time
	Result    execx.Result
}

func (r *Recorder) Run(ctx context.Context, spec execx.Spec) execx.Result {
	spec.Args = append([]string(nil), spec.Args...)
	r.Calls = append(r.Calls, spec)
	dl, _ := ctx.Deadline()
	r.Deadlines = append(r.Deadlines, dl)
	return r.Result
}

// Last returns the most recent invocation; it fails the test when none was made.
func (r *Recorder) Last(t *testing.T) execx.Spec {
	t.Helper()
	if len(r.Calls) == 0 {
		t.Fatalf("no process was spawned")
	}
	return r.Calls[len(r.Calls)-1]
}

// RequireBinary skips the test when name is not on PATH.
func RequireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}
