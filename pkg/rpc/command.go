package rpc

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnknownCommand is returned when a command frame names no known type.
var ErrUnknownCommand = errors.New("unknown command")

// CommandType names a command on the wire.
type CommandType string

const (
	CmdPreviewConfig    CommandType = "PREVIEW_CONFIG"    // args: java executable, host classpath
	CmdPreviewClasspath CommandType = "PREVIEW_CLASSPATH" // followed by a data frame
	CmdPreviewFqName    CommandType = "PREVIEW_FQ_NAME"   // followed by a data frame
)

func (t CommandType) valid() bool {
	switch t {
	case CmdPreviewConfig, CmdPreviewClasspath, CmdPreviewFqName:
		return true
	}
	return false
}

// Command is a decoded command frame.
type Command struct {
	Type CommandType
	Args []string
}

func (c Command) String() string {
	return string(c.encode())
}

func (c Command) encode() []byte {
	var sb strings.Builder
	sb.WriteString(string(c.Type))
	for _, a := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(url.QueryEscape(a))
	}
	return []byte(sb.String())
}

// ParseCommand decodes the payload of a command frame.
func ParseCommand(payload string) (Command, error) {
	fields := strings.Split(payload, " ")
	cmd := Command{Type: CommandType(fields[0])}
	if !cmd.Type.valid() {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	for _, f := range fields[1:] {
		arg, err := url.QueryUnescape(f)
		if err != nil {
			return Command{}, fmt.Errorf("command %s: bad argument: %w", cmd.Type, err)
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, nil
}
