package cli

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCommandError(t *testing.T) {
	err := NewCommandError(2)
	assert.Equal(t, 2, err.ExitCode())
	assert.Equal(t, "command failed", err.Error())
}
