package classpath

import (
	"context"
	"path/filepath"
	"strings"
)

const (
	skikoGroup         = "org.jetbrains.skiko"
	skikoAwtPrefix     = "skiko-awt-"
	skikoRuntimePrefix = "skiko-awt-runtime-"
	jarSuffix          = ".jar"
)

// SkikoInfo is what a classpath reveals about its skiko jars.
type SkikoInfo struct {
	HasAwt     bool
	HasRuntime bool

	// Version is taken from the last skiko-awt-<version>.jar seen.
	Version string
}

// DetectSkiko inspects file names only; the files do not need to exist.
func DetectSkiko(files []string) SkikoInfo {
	var info SkikoInfo
	for _, f := range files {
		name := filepath.Base(f)
		if !strings.HasSuffix(name, jarSuffix) {
			continue
		}
		switch {
		case strings.HasPrefix(name, skikoRuntimePrefix):
			info.HasRuntime = true
		case strings.HasPrefix(name, skikoAwtPrefix):
			info.HasAwt = true
			info.Version = strings.TrimSuffix(strings.TrimPrefix(name, skikoAwtPrefix), jarSuffix)
		}
	}
	return info
}

// RuntimeCoordinate returns the runtime artifact matching a skiko version on a target.
func RuntimeCoordinate(target Target, version string) Coordinate {
	return Coordinate{
		Group:    skikoGroup,
		Artifact: skikoRuntimePrefix + target.ID(),
		Version:  version,
	}
}

// RuntimeFilesIfNeeded returns the skiko runtime jar(s) the preview classpath lacks.
//
// The lookup is best-effort: a classpath that already carries a runtime jar, has no
// versioned skiko-awt jar, or whose runtime cannot be resolved yields nil.
func RuntimeFilesIfNeeded(ctx context.Context, files []string, resolver Resolver, target Target) (out []string) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	if resolver == nil {
		return nil
	}

	info := DetectSkiko(files)
	if info.HasRuntime {
		return nil
	}
	if !info.HasAwt || strings.TrimSpace(info.Version) == "" {
		return nil
	}

	resolved, err := resolver.Resolve(ctx, RuntimeCoordinate(target, info.Version))
	if err != nil {
		return nil
	}
	return resolved
}
