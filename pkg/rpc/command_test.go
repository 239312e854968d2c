package rpc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	cmd := Command{Type: CmdPreviewConfig, Args: []string{"C:\\Program Files\\java.exe", "a b+c%d"}}

	parsed, err := ParseCommand(cmd.String())
	require.NoError(t, err)
	assert.Equal(t, cmd, parsed)
	assert.Len(t, strings.Split(cmd.String(), " "), 3, "arguments must not carry raw spaces")
}

func TestParseCommand_NoArgs(t *testing.T) {
	parsed, err := ParseCommand("PREVIEW_CLASSPATH")
	require.NoError(t, err)
	assert.Equal(t, CmdPreviewClasspath, parsed.Type)
	assert.Empty(t, parsed.Args)
}

func TestParseCommand_Errors(t *testing.T) {
	_, err := ParseCommand("")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = ParseCommand("PREVIEW_CONFIG %zz x")
	assert.ErrorContains(t, err, "bad argument")
}
