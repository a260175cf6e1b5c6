package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"envkit/cli/envctl/internal/compose"
	"envkit/cli/envctl/internal/execx"
)

// DefaultBackend is the orchestration executable used when none is configured.
const DefaultBackend = "docker"

// Options controls how a backend invocation is carried out.
type Options struct {
	DryRun  bool
	Backend string
	Dir     string
	// Timeout bounds each invocation; zero waits for the backend indefinitely.
	Timeout time.Duration
	Exec    execx.Executor
	Stdout  io.Writer
	Stderr  io.Writer
}

func (o Options) backend() string {
	if b := strings.TrimSpace(o.Backend); b != "" {
		return b
	}
	return DefaultBackend
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// Compose runs `<backend> compose -f <file>` with the given subcommand and
// arguments. When DryRun is set it only prints the command to stderr.
func Compose(ctx context.Context, o Options, args ...string) execx.Result {
	return Host(ctx, o, o.backend(), compose.Args(args...)...)
}

// Host executes name with args, streaming its output, and blocks until it exits.
func Host(ctx context.Context, o Options, name string, args ...string) execx.Result {
	if o.DryRun {
		fmt.Fprintln(o.stderr(), "+ "+name+" "+strings.Join(args, " "))
		return execx.Result{}
	}
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	ex := o.Exec
	if ex == nil {
		ex = execx.Host{}
	}
	return ex.Run(ctx, execx.Spec{
		Name:   name,
		Args:   args,
		Dir:    o.Dir,
		Stdout: o.Stdout,
		Stderr: o.Stderr,
	})
}
