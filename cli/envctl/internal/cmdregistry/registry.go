package cmdregistry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"envkit/cli/envctl/internal/runner"
)

// CodeUsage is the exit status for user errors such as an unknown command.
const CodeUsage = 2

// ErrUnknownCommand is matched by every UnknownCommandError.
var ErrUnknownCommand = errors.New("unknown command")

// UnknownCommandError names the rejected command and the commands that exist.
type UnknownCommandError struct {
	Name  string
	Known []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownCommandError) Is(target error) bool { return target == ErrUnknownCommand }

// Context carries the pre-parsed data and handles that command handlers need.
type Context struct {
	Ctx      context.Context
	Args     []string
	Runner   runner.Options
	Stdout   io.Writer
	Log      log.FieldLogger
	Registry *Registry
}

// Handler executes a command and returns the exit status to report.
type Handler func(*Context) (int, error)

// Command is one entry of the command table.
type Command struct {
	Name    string
	Summary string
	Handler Handler
}

// Registry maps command names to commands.
type Registry struct {
	commands map[string]Command
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd to the table. It panics if the name is empty, already
// registered, or the handler is nil.
func (r *Registry) Register(cmd Command) {
	if strings.TrimSpace(cmd.Name) == "" {
		panic("command name must not be empty")
	}
	if cmd.Handler == nil {
		panic(fmt.Sprintf("command %s has no handler", cmd.Name))
	}
	if _, exists := r.commands[cmd.Name]; exists {
		panic(fmt.Sprintf("command %s already registered", cmd.Name))
	}
	r.commands[cmd.Name] = cmd
}

// Lookup returns the command and whether it exists.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Names returns the registered command names in lexicographic order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for n := range r.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// List yields (name, summary) pairs in lexicographic order. The table is
// read when iteration starts, so each range over the result sees the
// current contents.
func (r *Registry) List() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, n := range r.Names() {
			if !yield(n, r.commands[n].Summary) {
				return
			}
		}
	}
}

// Run dispatches name. Unknown names never reach a handler and report
// CodeUsage with an *UnknownCommandError.
func (r *Registry) Run(ctx *Context, name string) (int, error) {
	cmd, ok := r.Lookup(name)
	if !ok {
		return CodeUsage, &UnknownCommandError{Name: name, Known: r.Names()}
	}
	if ctx.Registry == nil {
		ctx.Registry = r
	}
	if ctx.Ctx == nil {
		ctx.Ctx = context.Background()
	}
	if ctx.Log == nil {
		ctx.Log = log.StandardLogger()
	}
	ctx.Log.WithFields(log.Fields{"command": name, "args": ctx.Args}).Debug("dispatching")
	return cmd.Handler(ctx)
}
