package execx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
)

const (
	// CodeTimeout is reported when the context deadline expires before the process exits.
	CodeTimeout = 124
	// CodeUnavailable is reported when the executable cannot be located or started.
	CodeUnavailable = 127
	// codeSignalBase is added to the signal number of a child killed by a signal.
	codeSignalBase = 128
)

// ErrBackendUnavailable marks failures to locate or spawn the executable.
var ErrBackendUnavailable = errors.New("backend unavailable")

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

type Result struct {
	Code int
	Err  error
}

// Spec describes a single process invocation. Nil streams default to the
// host's stdin/stdout/stderr.
type Spec struct {
	Name   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s Spec) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// Executor runs a process to completion.
type Executor interface {
	Run(ctx context.Context, spec Spec) Result
}

// InterruptedError reports a run during which this process received a
// signal and forwarded it to the child. Code is 128 plus the signal number,
// whatever status the child itself exited with.
type InterruptedError struct {
	Name   string
	Signal os.Signal
	Code   int
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("%s interrupted by %s", e.Name, e.Signal)
}

// Host executes processes on the local machine. The child runs in its own
// process group, so terminal-generated signals reach it only once: through
// this process, which forwards interrupt and termination signals to it.
type Host struct {
	Log log.FieldLogger
}

// forwardedSignals are relayed to the child while it runs.
var forwardedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func (h Host) logger() log.FieldLogger {
	if h.Log == nil {
		return log.StandardLogger()
	}
	return h.Log
}

func (h Host) Run(ctx context.Context, spec Spec) Result {
	lg := h.logger().WithField("exe", spec.Name)
	lg.Debugf("+ %s", spec)
	path, err := exec.LookPath(spec.Name)
	if err != nil {
		return Result{Code: CodeUnavailable, Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)}
	}
	cmd := exec.Command(path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Stdin = orReader(spec.Stdin, os.Stdin)
	cmd.Stdout = orWriter(spec.Stdout, os.Stdout)
	cmd.Stderr = orWriter(spec.Stderr, os.Stderr)
	ownProcessGroup(cmd)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, forwardedSignals...)
	defer signal.Stop(sigc)

	if err := cmd.Start(); err != nil {
		return Result{Code: CodeUnavailable, Err: fmt.Errorf("%w: start %s: %v", ErrBackendUnavailable, spec.Name, err)}
	}

	var forwarded os.Signal
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ctxDone := ctx.Done()
		for {
			select {
			case s := <-sigc:
				lg.WithField("signal", s.String()).Debug("forwarding signal")
				forwarded = s
				_ = cmd.Process.Signal(s)
			case <-ctxDone:
				ctxDone = nil
				_ = cmd.Process.Kill()
			case <-done:
				return
			}
		}
	}()
	err = cmd.Wait()
	close(done)
	<-stopped
	select {
	case s := <-sigc:
		// arrived after the child exited; nothing left to forward to
		forwarded = s
	default:
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{Code: CodeTimeout, Err: ctx.Err()}
	}
	if forwarded != nil {
		code := codeSignalBase + signalNumber(forwarded)
		lg.WithFields(log.Fields{"signal": forwarded.String(), "code": code}).Debug("interrupted")
		return Result{Code: code, Err: &InterruptedError{Name: spec.Name, Signal: forwarded, Code: code}}
	}
	if err == nil {
		lg.Debug("exit 0")
		return Result{}
	}
	code := exitCode(err)
	lg.WithField("code", code).Debug("process exited non-zero")
	return Result{Code: code, Err: &ExitError{Name: spec.Name, Code: code}}
}

func signalNumber(s os.Signal) int {
	if n, ok := s.(syscall.Signal); ok {
		return int(n)
	}
	return 0
}

func exitCode(err error) int {
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return 1
	}
	if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return codeSignalBase + int(ws.Signal())
	}
	return ee.ExitCode()
}

func orReader(r io.Reader, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
