// Package helpcmd renders the command table as help text.
package helpcmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"envkit/cli/envctl/internal/cmdregistry"
)

// Register adds the help command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:    "help",
		Summary: "Show available commands (default)",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) (int, error) {
	out := ctx.Stdout
	if out == nil {
		out = os.Stdout
	}
	return 0, Write(out, ctx.Registry)
}

// Write prints a usage line followed by one line per registered command.
// The text is rendered in memory and written to w in one call.
func Write(w io.Writer, r *cmdregistry.Registry) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Usage: envctl [--dry-run] [-C <dir>] [--backend <exe>] [--timeout <dur>] <command> [-- extra args]")
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Commands:")
	for name, summary := range r.List() {
		fmt.Fprintf(tw, "  %s\t%s\n", name, summary)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
