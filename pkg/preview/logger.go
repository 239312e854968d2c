package preview

import (
	"context"
	"log/slog"

	"github.com/aretw0/previewkit/pkg/rpc"
)

// LogPrefix marks connection diagnostics in the build log.
const LogPrefix = "Compose Preview: "

// slogAdapter exposes a slog.Logger as an rpc.Logger.
// Diagnostics are only produced when the logger is enabled for debug, and then
// written at info level so they show up next to the rest of the task output.
type slogAdapter struct {
	ctx    context.Context
	logger *slog.Logger
}

// NewRPCLogger adapts logger for use by package rpc.
func NewRPCLogger(ctx context.Context, logger *slog.Logger) rpc.Logger {
	return &slogAdapter{ctx: ctx, logger: logger}
}

func (a *slogAdapter) Enabled() bool {
	return a.logger.Enabled(a.ctx, slog.LevelDebug)
}

func (a *slogAdapter) Log(msg string) {
	a.logger.InfoContext(a.ctx, LogPrefix+msg)
}
