package rpc

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/previewkit/pkg/domain"
)

// MaxFrameSize bounds a single frame. Classpaths are long, but not this long.
const MaxFrameSize = 64 << 20

// DefaultTimeout applies to the dial and to every frame read or written.
const DefaultTimeout = 5 * time.Second

var (
	// ErrFrameTooLarge is returned when a peer announces a frame above MaxFrameSize.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrClosed is returned when using a connection after Close.
	ErrClosed = errors.New("connection closed")
)

// Connection is one side of a preview handshake.
// It is not safe for concurrent use; each side drives it from a single goroutine.
type Connection struct {
	conn    net.Conn
	reader  *bufio.Reader
	logger  Logger
	timeout time.Duration
	onClose func()

	closeOnce sync.Once
	closed    bool
	closeErr  error
}

// Option configures a Connection.
type Option func(*Connection)

// WithTimeout sets the per-frame I/O deadline. Zero disables deadlines.
func WithTimeout(d time.Duration) Option {
	return func(c *Connection) {
		c.timeout = d
	}
}

// WithOnClose registers a callback that runs once, when the connection is closed.
func WithOnClose(fn func()) Option {
	return func(c *Connection) {
		c.onClose = fn
	}
}

// NewConnection wraps an established network connection.
func NewConnection(conn net.Conn, logger Logger, opts ...Option) *Connection {
	if logger == nil {
		logger = NopLogger
	}
	c := &Connection{
		conn:    conn,
		reader:  bufio.NewReaderSize(conn, 64*1024),
		logger:  logger,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DialLocal connects to an IDE listening on the loopback interface.
// A nil connection with a non-nil error means the IDE is not reachable.
func DialLocal(ctx context.Context, port int, logger Logger, opts ...Option) (*Connection, error) {
	if logger == nil {
		logger = NopLogger
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d", port)
	}

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	dialer := net.Dialer{Timeout: DefaultTimeout}
	logf(logger, "connecting to %s", addr)
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		logf(logger, "could not connect to %s: %v", addr, err)
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	logf(logger, "connected to %s", addr)
	return NewConnection(conn, logger, opts...), nil
}

// RemoteAddr returns the peer address.
func (c *Connection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the underlying connection. It is safe to call more than once.
func (c *Connection) Close() error {
	c.closeOnce.Do(func() {
		c.closed = true
		c.closeErr = c.conn.Close()
		logf(c.logger, "connection to %s closed", c.conn.RemoteAddr())
		if c.onClose != nil {
			c.onClose()
		}
	})
	return c.closeErr
}

// SendCommand writes one command frame.
func (c *Connection) SendCommand(t CommandType, args ...string) error {
	cmd := Command{Type: t, Args: args}
	logf(c.logger, "send command %s", t)
	return c.writeFrame(cmd.encode())
}

// SendData writes one data frame.
func (c *Connection) SendData(data []byte) error {
	return c.writeFrame(data)
}

// SendUTF8 writes s as a data frame.
func (c *Connection) SendUTF8(s string) error {
	return c.writeFrame([]byte(s))
}

// ReceiveCommand reads and decodes the next command frame.
func (c *Connection) ReceiveCommand() (Command, error) {
	payload, err := c.readFrame()
	if err != nil {
		return Command{}, err
	}
	cmd, err := ParseCommand(string(payload))
	if err != nil {
		return Command{}, err
	}
	logf(c.logger, "received command %s", cmd.Type)
	return cmd, nil
}

// ReceiveData reads the next data frame.
func (c *Connection) ReceiveData() ([]byte, error) {
	return c.readFrame()
}

func (c *Connection) writeFrame(payload []byte) error {
	if c.closed {
		return ErrClosed
	}
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	c.setDeadline()

	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[4:], payload)
	if _, err := c.conn.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (c *Connection) readFrame() ([]byte, error) {
	if c.closed {
		return nil, ErrClosed
	}
	c.setDeadline()

	var header [4]byte
	if _, err := io.ReadFull(c.reader, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame header: %w", err)
	}
	size := binary.BigEndian.Uint32(header[:])
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(c.reader, payload); err != nil {
		return nil, fmt.Errorf("read frame body: %w", err)
	}
	return payload, nil
}

func (c *Connection) setDeadline() {
	if c.timeout <= 0 {
		return
	}
	_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
}

// SendConfigFromGradle sends the host config, the preview classpath and the target name.
func (c *Connection) SendConfigFromGradle(cfg domain.HostConfig, previewClasspath, previewFqName string) error {
	if err := c.SendCommand(CmdPreviewConfig, cfg.JavaExecutable, cfg.HostClasspath); err != nil {
		return err
	}
	if err := c.SendCommand(CmdPreviewClasspath); err != nil {
		return err
	}
	if err := c.SendUTF8(previewClasspath); err != nil {
		return err
	}
	if err := c.SendCommand(CmdPreviewFqName); err != nil {
		return err
	}
	return c.SendUTF8(previewFqName)
}

// ReceiveConfigFromGradle reads what SendConfigFromGradle wrote.
// Commands may arrive in any order; a repeated command overwrites the earlier value.
// The peer closing the connection before all three commands arrived is an error.
func (c *Connection) ReceiveConfigFromGradle() (*domain.PreviewRequest, error) {
	var req domain.PreviewRequest
	var gotConfig, gotCP, gotFqName bool

	for !(gotConfig && gotCP && gotFqName) {
		cmd, err := c.ReceiveCommand()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: connection closed before the handshake completed", domain.ErrIncompleteRequest)
			}
			return nil, err
		}

		switch cmd.Type {
		case CmdPreviewConfig:
			if len(cmd.Args) != 2 {
				return nil, fmt.Errorf("command %s: expected 2 arguments, got %d", cmd.Type, len(cmd.Args))
			}
			req.Host = domain.HostConfig{JavaExecutable: cmd.Args[0], HostClasspath: cmd.Args[1]}
			gotConfig = true
		case CmdPreviewClasspath:
			data, err := c.ReceiveData()
			if err != nil {
				return nil, fmt.Errorf("command %s: %w", cmd.Type, err)
			}
			req.PreviewClasspath = string(data)
			gotCP = true
		case CmdPreviewFqName:
			data, err := c.ReceiveData()
			if err != nil {
				return nil, fmt.Errorf("command %s: %w", cmd.Type, err)
			}
			req.PreviewFqName = string(data)
			gotFqName = true
		}
	}

	return &req, nil
}
