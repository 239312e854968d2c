package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/aretw0/previewkit/internal/logging"
	"github.com/aretw0/previewkit/pkg/domain"
	"github.com/aretw0/previewkit/pkg/ports"
	"github.com/aretw0/previewkit/pkg/rpc"
	"golang.org/x/net/netutil"
)

// DefaultMaxConnections bounds concurrently handled builds.
const DefaultMaxConnections = 16

// Listener accepts preview handshakes from builds.
type Listener struct {
	store     ports.PreviewStore
	logger    *slog.Logger
	metrics   *Metrics
	maxConns  int
	timeout   time.Duration
	onReceive func(*domain.PreviewRequest)
	now       func() time.Time

	ln net.Listener
	wg sync.WaitGroup
}

// Option configures a Listener.
type Option func(*Listener)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Listener) {
		l.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(l *Listener) {
		l.metrics = m
	}
}

// WithMaxConnections bounds concurrently handled connections.
func WithMaxConnections(n int) Option {
	return func(l *Listener) {
		l.maxConns = n
	}
}

// WithTimeout sets the per-frame I/O deadline for accepted connections.
func WithTimeout(d time.Duration) Option {
	return func(l *Listener) {
		l.timeout = d
	}
}

// OnReceive registers a callback invoked after each request is stored.
func OnReceive(fn func(*domain.PreviewRequest)) Option {
	return func(l *Listener) {
		l.onReceive = fn
	}
}

// New creates a listener storing requests in store.
func New(store ports.PreviewStore, opts ...Option) *Listener {
	l := &Listener{
		store:    store,
		logger:   logging.NewNop(),
		maxConns: DefaultMaxConnections,
		timeout:  rpc.DefaultTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.metrics == nil {
		l.metrics = NewMetrics(nil)
	}
	return l
}

// Listen binds the loopback port. Port 0 picks a free port; see Addr.
func (l *Listener) Listen(port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	if l.maxConns > 0 {
		ln = netutil.LimitListener(ln, l.maxConns)
	}
	l.ln = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (l *Listener) Addr() net.Addr {
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// Port returns the bound TCP port, or 0 before Listen.
func (l *Listener) Port() int {
	if tcp, ok := l.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Serve accepts connections until ctx is cancelled, then waits for in-flight handshakes.
func (l *Listener) Serve(ctx context.Context) error {
	if l.ln == nil {
		return errors.New("listener not bound: call Listen first")
	}
	defer l.wg.Wait()

	go func() {
		<-ctx.Done()
		_ = l.ln.Close()
	}()

	l.logger.Info("preview listener accepting", "addr", l.ln.Addr().String())
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}

		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.handle(ctx, conn)
		}()
	}
}

func (l *Listener) handle(ctx context.Context, raw net.Conn) {
	l.metrics.Active.Inc()
	defer l.metrics.Active.Dec()

	conn := rpc.NewConnection(raw, nil, rpc.WithTimeout(l.timeout))
	defer conn.Close()

	logger := l.logger.With("remote", raw.RemoteAddr().String())

	req, err := conn.ReceiveConfigFromGradle()
	if err != nil {
		l.metrics.Failed.WithLabelValues("decode").Inc()
		logger.Warn("preview handshake failed", "error", err)
		return
	}
	if err := req.Validate(); err != nil {
		l.metrics.Failed.WithLabelValues("validate").Inc()
		logger.Warn("preview request rejected", "error", err)
		return
	}

	req.ReceivedAt = l.now().UTC()
	if err := l.store.Save(ctx, req); err != nil {
		l.metrics.Failed.WithLabelValues("store").Inc()
		logger.Error("failed to store preview request", "error", err, "target", req.PreviewFqName)
		return
	}

	l.metrics.Received.Inc()
	l.metrics.LastReceive.Set(float64(req.ReceivedAt.Unix()))
	logger.Info("preview configured", "target", req.PreviewFqName, "java", req.Host.JavaExecutable)

	if l.onReceive != nil {
		l.onReceive(req)
	}
}
