package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"envkit/cli/envctl/internal/cmdregistry"
	composecmd "envkit/cli/envctl/internal/commands/composecmd"
	helpcmd "envkit/cli/envctl/internal/commands/helpcmd"
	"envkit/cli/envctl/internal/config"
	"envkit/cli/envctl/internal/execx"
	runner "envkit/cli/envctl/internal/runner"
)

func newRegistry() *cmdregistry.Registry {
	r := cmdregistry.New()
	composecmd.Register(r)
	helpcmd.Register(r)
	return r
}

type options struct {
	dryRun  bool
	dir     string
	backend string
	timeout time.Duration
	command string
	extra   []string
}

// parseArgs scans global flags up to the command name. Everything after the
// command is passed through, minus a leading "--" separator.
func parseArgs(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch a {
		case "--dry-run":
			o.dryRun = true
		case "-C", "--dir":
			if i+1 >= len(args) {
				return o, fmt.Errorf("%s requires value", a)
			}
			o.dir = args[i+1]
			i++
		case "--backend":
			if i+1 >= len(args) {
				return o, fmt.Errorf("--backend requires value")
			}
			o.backend = args[i+1]
			i++
		case "--timeout":
			if i+1 >= len(args) {
				return o, fmt.Errorf("--timeout requires value")
			}
			d, err := time.ParseDuration(args[i+1])
			if err != nil || d < 0 {
				return o, fmt.Errorf("--timeout: invalid duration %q", args[i+1])
			}
			o.timeout = d
			i++
		case "-h", "--help":
			o.command = "help"
			return o, nil
		default:
			o.command = a
			o.extra = args[i+1:]
			if len(o.extra) > 0 && o.extra[0] == "--" {
				o.extra = o.extra[1:]
			}
			return o, nil
		}
	}
	o.command = "help"
	return o, nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if strings.TrimSpace(level) == "" {
		return l
	}
	if lv, err := log.ParseLevel(level); err == nil {
		l.SetLevel(lv)
	} else {
		l.Warnf("invalid log level %s, defaulting to info", level)
	}
	return l
}

// run executes the CLI and returns the process exit status. ex is nil in
// production, in which case processes are spawned on the host.
func run(argv []string, stdout, stderr io.Writer, ex execx.Executor) int {
	cfg, cfgPath, cfgErr := config.ReadHostConfig()
	logger := newLogger(stderr, cfg.LogLevel)
	if cfgErr != nil {
		logger.WithError(cfgErr).WithField("path", cfgPath).Warn("ignoring unreadable config")
	}

	opts, err := parseArgs(argv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cmdregistry.CodeUsage
	}
	timeout, err := cfg.ParsedTimeout()
	if err != nil {
		logger.WithError(err).WithField("path", cfgPath).Warn("ignoring invalid timeout in config")
		timeout = 0
	}
	if opts.timeout > 0 {
		timeout = opts.timeout
	}
	if ex == nil {
		ex = execx.Host{Log: logger}
	}
	ro := runner.Options{
		DryRun:  opts.dryRun,
		Backend: cfg.Backend,
		Dir:     cfg.Dir,
		Timeout: timeout,
		Exec:    ex,
		Stdout:  stdout,
		Stderr:  stderr,
	}
	if opts.backend != "" {
		ro.Backend = opts.backend
	}
	if opts.dir != "" {
		ro.Dir = opts.dir
	}

	reg := newRegistry()
	ctx := &cmdregistry.Context{
		Ctx:      context.Background(),
		Args:     opts.extra,
		Runner:   ro,
		Stdout:   stdout,
		Log:      logger,
		Registry: reg,
	}
	code, err := reg.Run(ctx, opts.command)
	if err != nil {
		report(logger, stderr, err)
	}
	return code
}

func report(logger log.FieldLogger, stderr io.Writer, err error) {
	var exitErr *execx.ExitError
	var intErr *execx.InterruptedError
	switch {
	case errors.Is(err, cmdregistry.ErrUnknownCommand):
		fmt.Fprintln(stderr, err)
	case errors.Is(err, execx.ErrBackendUnavailable):
		logger.WithError(err).Error("backend unavailable")
	case errors.As(err, &intErr):
		logger.WithField("code", intErr.Code).Warn(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		logger.WithError(err).Error("backend timed out")
	case errors.As(err, &exitErr):
		logger.WithField("code", exitErr.Code).Errorf("backend failed: %v", err)
	default:
		logger.WithError(err).Error("command failed")
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, nil))
}
