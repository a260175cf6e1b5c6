package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"envkit/cli/envctl/internal/execx"
	"envkit/cli/envctl/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_DefaultBackend(t *testing.T) {
	rec := &testutil.Recorder{}
	res := Compose(context.Background(), Options{Exec: rec, Dir: "/srv/app"}, "ps")
	require.NoError(t, res.Err)
	call := rec.Last(t)
	assert.Equal(t, "docker", call.Name)
	assert.Equal(t, []string{"compose", "-f", "tools/docker-compose.yaml", "ps"}, call.Args)
	assert.Equal(t, "/srv/app", call.Dir)
}

func TestCompose_CustomBackendAndResult(t *testing.T) {
	rec := &testutil.Recorder{Result: execx.Result{Code: 3, Err: &execx.ExitError{Name: "podman", Code: 3}}}
	res := Compose(context.Background(), Options{Exec: rec, Backend: " podman "}, "up")
	assert.Equal(t, 3, res.Code)
	assert.Equal(t, "podman", rec.Last(t).Name)
}

func TestCompose_DryRunDoesNotSpawn(t *testing.T) {
	rec := &testutil.Recorder{}
	var stderr bytes.Buffer
	res := Compose(context.Background(), Options{Exec: rec, DryRun: true, Stderr: &stderr}, "down", "-v")
	assert.Zero(t, res.Code)
	assert.Empty(t, rec.Calls)
	assert.Equal(t, "+ docker compose -f tools/docker-compose.yaml down -v\n", stderr.String())
}

func TestCompose_TimeoutBoundsInvocation(t *testing.T) {
	rec := &testutil.Recorder{}
	before := time.Now()
	Compose(context.Background(), Options{Exec: rec, Timeout: time.Minute}, "up")
	require.Len(t, rec.Deadlines, 1)
	assert.WithinDuration(t, before.Add(time.Minute), rec.Deadlines[0], 5*time.Second)

	Compose(context.Background(), Options{Exec: rec}, "up")
	assert.True(t, rec.Deadlines[1].IsZero(), "zero Timeout must not set a deadline")
}

func TestCompose_TimeoutWithHostExecutor(t *testing.T) {
	testutil.RequireBinary(t, "sh")
	testutil.RequireBinary(t, "sleep")
	dir := t.TempDir()
	stub := filepath.Join(dir, "slow-backend")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\nexec sleep 5\n"), 0o755))
	res := Compose(context.Background(), Options{Backend: stub, Timeout: 50 * time.Millisecond}, "up")
	assert.Equal(t, execx.CodeTimeout, res.Code)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}
