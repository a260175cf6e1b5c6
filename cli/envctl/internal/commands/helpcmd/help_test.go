package helpcmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envkit/cli/envctl/internal/cmdregistry"
	"envkit/cli/envctl/internal/commands/composecmd"
)

func TestHelpListsCommandsInOrder(t *testing.T) {
	r := cmdregistry.New()
	composecmd.Register(r)
	Register(r)

	var out bytes.Buffer
	code, err := r.Run(&cmdregistry.Context{Stdout: &out}, "help")
	require.NoError(t, err)
	assert.Zero(t, code)

	text := out.String()
	iDestroy := strings.Index(text, "  destroy")
	iHelp := strings.Index(text, "  help")
	iSetup := strings.Index(text, "  setup")
	require.True(t, iDestroy > 0 && iHelp > 0 && iSetup > 0, text)
	assert.Less(t, iDestroy, iHelp)
	assert.Less(t, iHelp, iSetup)
	assert.Contains(t, text, "Show available commands")
}

func TestHelpIdempotent(t *testing.T) {
	r := cmdregistry.New()
	composecmd.Register(r)
	Register(r)
	var a, b bytes.Buffer
	require.NoError(t, Write(&a, r))
	require.NoError(t, Write(&b, r))
	assert.Equal(t, a.String(), b.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestHelpReportsWriteError(t *testing.T) {
	r := cmdregistry.New()
	Register(r)
	assert.EqualError(t, Write(failingWriter{}, r), "closed")
}

func TestHelpAlignsSummaries(t *testing.T) {
	r := cmdregistry.New()
	composecmd.Register(r)
	Register(r)
	var out bytes.Buffer
	require.NoError(t, Write(&out, r))
	col := -1
	for _, line := range strings.Split(out.String(), "\n") {
		if !strings.HasPrefix(line, "  ") {
			continue
		}
		name := strings.Fields(line)[0]
		rest := strings.TrimLeft(line[2+len(name):], " ")
		at := len(line) - len(rest)
		if col == -1 {
			col = at
		}
		assert.Equal(t, col, at, "summary column for %q", name)
	}
	assert.Greater(t, col, 0)
}
