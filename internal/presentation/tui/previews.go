package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/previewkit/pkg/classpath"
	"github.com/aretw0/previewkit/pkg/domain"
)

// PreviewsMarkdown describes stored preview requests as a markdown document.
func PreviewsMarkdown(previews []*domain.PreviewRequest) string {
	var sb strings.Builder
	sb.WriteString("# Previews\n\n")
	if len(previews) == 0 {
		sb.WriteString("_No build has configured a preview yet._\n")
		return sb.String()
	}

	for _, p := range previews {
		fmt.Fprintf(&sb, "## `%s`\n\n", p.PreviewFqName)
		if !p.ReceivedAt.IsZero() {
			fmt.Fprintf(&sb, "- **Received:** %s\n", p.ReceivedAt.Format(time.RFC3339))
		}
		fmt.Fprintf(&sb, "- **Java:** `%s`\n", p.Host.JavaExecutable)
		writeClasspath(&sb, "Host classpath", p.Host.HostClasspath)
		writeClasspath(&sb, "Preview classpath", p.PreviewClasspath)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeClasspath(sb *strings.Builder, title, pathList string) {
	entries := classpath.Split(pathList)
	fmt.Fprintf(sb, "- **%s:** %d entries\n", title, len(entries))
	for _, e := range entries {
		fmt.Fprintf(sb, "  - `%s`\n", e)
	}
}
