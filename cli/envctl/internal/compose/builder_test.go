package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgs_Up(t *testing.T) {
	assert.Equal(t,
		[]string{"compose", "-f", "tools/docker-compose.yaml", "up", "-d", "--remove-orphans"},
		Args(UpArgs()...))
}

func TestArgs_Down(t *testing.T) {
	assert.Equal(t,
		[]string{"compose", "-f", "tools/docker-compose.yaml", "down", "-v", "-t", "0", "--remove-orphans"},
		Args(DownArgs()...))
}

func TestArgs_FreshSlices(t *testing.T) {
	a := Args(UpArgs()...)
	a[0] = "mutated"
	assert.Equal(t, "compose", Args(UpArgs()...)[0], "mutation leaked into later call")
}
