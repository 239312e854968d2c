package preview

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/previewkit/internal/logging"
	"github.com/aretw0/previewkit/pkg/classpath"
	"github.com/aretw0/previewkit/pkg/domain"
	"github.com/aretw0/previewkit/pkg/rpc"
)

// Task sends one preview configuration to the IDE.
type Task struct {
	// PreviewClasspath is the project's runtime classpath for the preview.
	PreviewClasspath []string
	// UITooling holds the ui-tooling jars (non-transitive).
	UITooling []string
	// HostClasspath holds the jars of the preview host process.
	HostClasspath []string

	JavaHome string
	Target   string
	IDEPort  string

	// Resolver finds the skiko runtime jar. Nil skips the lookup.
	Resolver classpath.Resolver
	// Platform overrides the detected platform for the skiko runtime lookup.
	Platform *classpath.Target

	Logger      *slog.Logger
	ConnOptions []rpc.Option
}

// Request assembles the payload without sending it.
func (t *Task) Request(ctx context.Context) domain.PreviewRequest {
	// A blank java home stays blank so Validate rejects it.
	host := domain.HostConfig{HostClasspath: classpath.PathString(t.HostClasspath)}
	if strings.TrimSpace(t.JavaHome) != "" {
		host.JavaExecutable = classpath.JavaExecutable(t.JavaHome)
	}

	return domain.PreviewRequest{
		Host:             host,
		PreviewClasspath: classpath.PathString(t.PreviewClasspath, t.UITooling, t.runtimeFiles(ctx)),
		PreviewFqName:    t.Target,
	}
}

// Run builds the payload and sends it to the IDE on IDEPort.
// A malformed port or an incomplete request is an error; an IDE that cannot be
// reached is not.
func (t *Task) Run(ctx context.Context) error {
	logger := t.logger()

	port, err := strconv.Atoi(strings.TrimSpace(t.IDEPort))
	if err != nil {
		return fmt.Errorf("invalid IDE port %q: %w", t.IDEPort, err)
	}

	req := t.Request(ctx)
	if err := req.Validate(); err != nil {
		return fmt.Errorf("preview request: %w", err)
	}

	conn, err := rpc.DialLocal(ctx, port, NewRPCLogger(ctx, logger), t.ConnOptions...)
	if err != nil {
		logger.Error("Could not connect to IDE")
		return nil
	}
	defer conn.Close()

	if err := conn.SendConfigFromGradle(req.Host, req.PreviewClasspath, req.PreviewFqName); err != nil {
		return fmt.Errorf("send preview config: %w", err)
	}
	logger.Debug("preview config sent", "target", req.PreviewFqName, "port", port)
	return nil
}

func (t *Task) runtimeFiles(ctx context.Context) []string {
	var target classpath.Target
	if t.Platform != nil {
		target = *t.Platform
	} else {
		current, err := classpath.CurrentTarget()
		if err != nil {
			return nil
		}
		target = current
	}
	return classpath.RuntimeFilesIfNeeded(ctx, t.PreviewClasspath, t.Resolver, target)
}

func (t *Task) logger() *slog.Logger {
	if t.Logger == nil {
		return logging.NewNop()
	}
	return t.Logger
}
