package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/previewkit/pkg/adapters/memory"
	"github.com/aretw0/previewkit/pkg/adapters/redis"
	"github.com/aretw0/previewkit/pkg/host"
	"github.com/aretw0/previewkit/pkg/ports"
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	httpAdapter "github.com/aretw0/previewkit/pkg/adapters/http"
)

const (
	healthService   = "previewkit.host"
	shutdownTimeout = 5 * time.Second
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Run a stand-in IDE that accepts preview configurations",
	Long: `Starts a loopback listener that speaks the preview configuration protocol and
keeps the last request per preview target. Received requests are served over HTTP
(/previews, /events, /metrics) and, optionally, a gRPC health endpoint.

When started by systemd with Type=notify, readiness is reported once every
endpoint is bound.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd, nil)
		flags := cmd.Flags()
		port, _ := flags.GetInt("port")
		httpAddr, _ := flags.GetString("http")
		grpcAddr, _ := flags.GetString("grpc")
		maxConns, _ := flags.GetInt("max-conns")

		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		streams := httpAdapter.NewStreamManager()

		listener := host.New(store,
			host.WithLogger(logger),
			host.WithMetrics(host.NewMetrics(reg)),
			host.WithMaxConnections(maxConns),
			host.OnReceive(streams.Publish),
		)
		if err := listener.Listen(port); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "compose.desktop.preview.ide.port=%d\n", listener.Port())

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error { return listener.Serve(ctx) })

		if httpAddr != "" {
			srv := &http.Server{
				Addr:              httpAddr,
				Handler:           httpAdapter.NewHandler(store, streams, reg),
				ReadHeaderTimeout: 5 * time.Second,
			}
			ln, err := net.Listen("tcp", httpAddr)
			if err != nil {
				return fmt.Errorf("http listen %s: %w", httpAddr, err)
			}
			logger.Info("HTTP API listening", "addr", ln.Addr().String())
			g.Go(func() error {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
		}

		if grpcAddr != "" {
			if err := serveHealth(ctx, g, grpcAddr, logger); err != nil {
				return err
			}
		}

		notify(logger, daemon.SdNotifyReady)
		err = g.Wait()
		notify(logger, daemon.SdNotifyStopping)
		logger.Info("Listener stopped")
		return err
	},
}

// openStore picks Redis when --redis-addr is set and memory otherwise.
func openStore(cmd *cobra.Command) (ports.PreviewStore, func(), error) {
	addr, _ := cmd.Flags().GetString("redis-addr")
	if addr == "" {
		return memory.NewStore(), func() {}, nil
	}
	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")
	ttl, _ := cmd.Flags().GetDuration("redis-ttl")

	store := redis.New(addr, password, db, redis.WithTTL(ttl))
	return store, func() { _ = store.Close() }, nil
}

func serveHealth(ctx context.Context, g *errgroup.Group, addr string, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen %s: %w", addr, err)
	}

	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(healthService, healthpb.HealthCheckResponse_SERVING)
	logger.Info("gRPC health listening", "addr", ln.Addr().String(), "service", healthService)

	g.Go(func() error { return srv.Serve(ln) })
	g.Go(func() error {
		<-ctx.Done()
		hs.Shutdown()
		srv.GracefulStop()
		return nil
	})
	return nil
}

// notify reports state to systemd; outside a notify unit it is a no-op.
func notify(logger *slog.Logger, state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		logger.Warn("sd_notify failed", "err", err)
		return
	}
	if sent {
		logger.Debug("sd_notify sent", "state", state)
	}
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("redis-addr", "", "Redis address; empty keeps previews in memory")
	cmd.Flags().String("redis-password", "", "Redis password")
	cmd.Flags().Int("redis-db", 0, "Redis database")
	cmd.Flags().Duration("redis-ttl", 0, "Expire stored previews after this long (0 keeps them)")
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().IntP("port", "p", 0, "Loopback port for builds (0 picks a free one)")
	listenCmd.Flags().String("http", "127.0.0.1:8080", "HTTP API address (empty disables)")
	listenCmd.Flags().String("grpc", "", "gRPC health address (empty disables)")
	listenCmd.Flags().Int("max-conns", host.DefaultMaxConnections, "Concurrent build connections")
	addStoreFlags(listenCmd)
}
