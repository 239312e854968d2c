package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/previewkit/pkg/adapters/mcp"
	"github.com/aretw0/previewkit/pkg/host"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts previewkit as an MCP Server over Standard Input/Output.
Agents get the CSS padding helpers and read access to received previews.

Previews come from the Redis store shared with 'previewkit listen' (--redis-addr),
or from an embedded listener when --listen-port is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger := newLogger(cmd, nil)
		slog.SetDefault(logger)

		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		if listenPort, _ := cmd.Flags().GetInt("listen-port"); listenPort >= 0 {
			listener := host.New(store, host.WithLogger(logger))
			if err := listener.Listen(listenPort); err != nil {
				return err
			}
			logger.Info("Embedded preview listener", "port", listener.Port())
			go func() {
				if err := listener.Serve(cmd.Context()); err != nil {
					logger.Error("Embedded listener failed", "error", err)
				}
			}()
		}

		logger.Info("Starting previewkit MCP Server (Stdio)...")
		if err := mcp.NewServer(store).ServeStdio(); err != nil {
			slog.Error("MCP Server execution failed", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().Int("listen-port", -1, "Also accept builds on this loopback port (-1 disables, 0 picks one)")
	addStoreFlags(mcpCmd)
}
