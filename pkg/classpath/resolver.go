package classpath

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrArtifactNotFound is returned when no repository holds the requested artifact.
var ErrArtifactNotFound = errors.New("artifact not found")

// Coordinate identifies a single artifact in group:artifact:version form.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// FileName is the jar name the artifact is published under.
func (c Coordinate) FileName() string {
	return c.Artifact + "-" + c.Version + jarSuffix
}

// ParseCoordinate parses "group:artifact:version".
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: expected group:artifact:version", s)
	}
	return Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}, nil
}

// Resolver turns a coordinate into local files. Resolution is not transitive.
type Resolver interface {
	Resolve(ctx context.Context, c Coordinate) ([]string, error)
}

// Layout is the directory structure of a local artifact repository.
type Layout int

const (
	// MavenLayout is <root>/<group as path>/<artifact>/<version>/<artifact>-<version>.jar.
	MavenLayout Layout = iota
	// GradleCacheLayout is <root>/<group>/<artifact>/<version>/<sha1>/<artifact>-<version>.jar.
	GradleCacheLayout
)

func (l Layout) String() string {
	switch l {
	case MavenLayout:
		return "maven"
	case GradleCacheLayout:
		return "gradle"
	default:
		return "unknown"
	}
}

// Repository is a local artifact repository root.
type Repository struct {
	Root   string
	Layout Layout
}

// DefaultRepositories returns the local Maven repository and the Gradle files cache.
// An empty gradleHome means "<home>/.gradle".
func DefaultRepositories(home, gradleHome string) []Repository {
	if gradleHome == "" {
		gradleHome = filepath.Join(home, ".gradle")
	}
	return []Repository{
		{Root: filepath.Join(gradleHome, "caches", "modules-2", "files-2.1"), Layout: GradleCacheLayout},
		{Root: filepath.Join(home, ".m2", "repository"), Layout: MavenLayout},
	}
}

// RepositoryResolver looks coordinates up in local repositories, first match wins.
type RepositoryResolver struct {
	repos []Repository
}

// NewRepositoryResolver creates a resolver over the given repositories, in priority order.
func NewRepositoryResolver(repos ...Repository) *RepositoryResolver {
	return &RepositoryResolver{repos: repos}
}

// Resolve implements Resolver.
func (r *RepositoryResolver) Resolve(ctx context.Context, c Coordinate) ([]string, error) {
	for _, repo := range r.repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files, err := lookup(repo, c)
		if err != nil {
			return nil, fmt.Errorf("%s repository %s: %w", repo.Layout, repo.Root, err)
		}
		if len(files) > 0 {
			return files, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, c)
}

func lookup(repo Repository, c Coordinate) ([]string, error) {
	switch repo.Layout {
	case MavenLayout:
		groupPath := filepath.Join(strings.Split(c.Group, ".")...)
		candidate := filepath.Join(repo.Root, groupPath, c.Artifact, c.Version, c.FileName())
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, err
		}
		return []string{candidate}, nil

	case GradleCacheLayout:
		// Several hash directories may hold the same jar; keep the result stable.
		matches, err := filepath.Glob(filepath.Join(repo.Root, c.Group, c.Artifact, c.Version, "*", c.FileName()))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, nil
		}
		sort.Strings(matches)
		return matches[:1], nil

	default:
		return nil, fmt.Errorf("unknown layout %d", repo.Layout)
	}
}
