package classpath

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("jar"), 0o644))
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("org.jetbrains.skiko:skiko-awt-runtime-linux-x64:0.7.85")
	require.NoError(t, err)
	assert.Equal(t, "org.jetbrains.skiko", c.Group)
	assert.Equal(t, "skiko-awt-runtime-linux-x64-0.7.85.jar", c.FileName())
	assert.Equal(t, "org.jetbrains.skiko:skiko-awt-runtime-linux-x64:0.7.85", c.String())

	for _, bad := range []string{"", "a:b", "a::c", "a:b:c:d"} {
		_, err := ParseCoordinate(bad)
		assert.Error(t, err, bad)
	}
}

func TestRepositoryResolver_Maven(t *testing.T) {
	root := t.TempDir()
	c := RuntimeCoordinate(linuxX64, "0.7.85")
	jar := filepath.Join(root, "org", "jetbrains", "skiko", c.Artifact, c.Version, c.FileName())
	touch(t, jar)

	files, err := NewRepositoryResolver(Repository{Root: root, Layout: MavenLayout}).Resolve(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{jar}, files)
}

func TestRepositoryResolver_GradleCache(t *testing.T) {
	root := t.TempDir()
	c := RuntimeCoordinate(linuxX64, "0.7.85")
	second := filepath.Join(root, c.Group, c.Artifact, c.Version, "ffff", c.FileName())
	first := filepath.Join(root, c.Group, c.Artifact, c.Version, "0a1b", c.FileName())
	touch(t, second)
	touch(t, first)

	files, err := NewRepositoryResolver(Repository{Root: root, Layout: GradleCacheLayout}).Resolve(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{first}, files)
}

func TestRepositoryResolver_PriorityAndMiss(t *testing.T) {
	home := t.TempDir()
	repos := DefaultRepositories(home, "")
	c := RuntimeCoordinate(linuxX64, "0.7.85")

	resolver := NewRepositoryResolver(repos...)
	_, err := resolver.Resolve(context.Background(), c)
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	mavenJar := filepath.Join(home, ".m2", "repository", "org", "jetbrains", "skiko", c.Artifact, c.Version, c.FileName())
	touch(t, mavenJar)
	files, err := resolver.Resolve(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{mavenJar}, files)

	gradleJar := filepath.Join(home, ".gradle", "caches", "modules-2", "files-2.1", c.Group, c.Artifact, c.Version, "abc", c.FileName())
	touch(t, gradleJar)
	files, err = resolver.Resolve(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{gradleJar}, files, "gradle cache is consulted first")
}

func TestRepositoryResolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRepositoryResolver(Repository{Root: t.TempDir()}).Resolve(ctx, RuntimeCoordinate(linuxX64, "1"))
	assert.ErrorIs(t, err, context.Canceled)
}
