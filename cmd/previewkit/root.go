package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/previewkit/internal/config"
	"github.com/aretw0/previewkit/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "previewkit",
	Short: "previewkit hands desktop preview configurations to a running IDE",
	Long: `previewkit builds the preview host configuration for a desktop UI project and
sends it to the IDE over a local connection. It also ships a stand-in IDE listener
and small CSS declaration helpers.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
}

// newLogger builds the command logger. Flags win over the config file.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	jsonLogs := false
	if cfg != nil {
		level = logging.ParseLevel(cfg.LogLevel)
		jsonLogs = cfg.LogJSON
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	if cmd.Flags().Changed("log-json") {
		jsonLogs, _ = cmd.Flags().GetBool("log-json")
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level, jsonLogs)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
