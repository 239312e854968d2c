package domain

import (
	"fmt"
	"time"
)

// HostConfig describes how the IDE should launch the preview host process.
type HostConfig struct {
	// JavaExecutable is the absolute path of the java binary.
	JavaExecutable string `json:"java_executable" yaml:"java_executable"`

	// HostClasspath is the path-list of the preview host (rpc runtime) jars.
	HostClasspath string `json:"host_classpath" yaml:"host_classpath"`
}

// PreviewRequest is everything the build sends to the IDE in one handshake.
type PreviewRequest struct {
	Host HostConfig `json:"host"`

	// PreviewClasspath is the path-list the preview itself is loaded from.
	PreviewClasspath string `json:"preview_classpath"`

	// PreviewFqName is the fully qualified name of the composable to preview.
	PreviewFqName string `json:"preview_fq_name"`

	// ReceivedAt is set by the receiving side. Zero on the sending side.
	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// Validate checks the fields that must be present at send time.
func (r *PreviewRequest) Validate() error {
	if r.Host.JavaExecutable == "" {
		return fmt.Errorf("%w: java executable is empty", ErrIncompleteRequest)
	}
	if r.PreviewFqName == "" {
		return fmt.Errorf("%w: preview target is empty", ErrIncompleteRequest)
	}
	return nil
}
