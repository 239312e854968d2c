package classpath

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	requested []Coordinate
	files     []string
	err       error
	panics    bool
}

func (f *fakeResolver) Resolve(ctx context.Context, c Coordinate) ([]string, error) {
	f.requested = append(f.requested, c)
	if f.panics {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.files, nil
}

var linuxX64 = Target{OS: "linux", Arch: "x64"}

func TestDetectSkiko(t *testing.T) {
	info := DetectSkiko([]string{
		"/cache/kotlin-stdlib-1.9.0.jar",
		"/cache/skiko-awt-0.7.85.jar",
		"/cache/skiko-awt-notajar.txt",
	})
	assert.True(t, info.HasAwt)
	assert.False(t, info.HasRuntime)
	assert.Equal(t, "0.7.85", info.Version)

	info = DetectSkiko([]string{"/cache/skiko-awt-runtime-linux-x64-0.7.85.jar"})
	assert.True(t, info.HasRuntime)
	assert.False(t, info.HasAwt)
}

func TestRuntimeFilesIfNeeded_ResolvesMatchingVersion(t *testing.T) {
	resolver := &fakeResolver{files: []string{"/repo/skiko-awt-runtime-linux-x64-0.7.85.jar"}}

	files := RuntimeFilesIfNeeded(context.Background(), []string{
		"/cache/ui-desktop-1.5.0.jar",
		"/cache/skiko-awt-0.7.85.jar",
	}, resolver, linuxX64)

	require.NotEmpty(t, files)
	require.Len(t, resolver.requested, 1)
	assert.Equal(t, Coordinate{
		Group:    "org.jetbrains.skiko",
		Artifact: "skiko-awt-runtime-linux-x64",
		Version:  "0.7.85",
	}, resolver.requested[0])
	assert.Contains(t, files[0], "0.7.85")
}

func TestRuntimeFilesIfNeeded_RuntimeAlreadyPresent(t *testing.T) {
	resolver := &fakeResolver{files: []string{"/repo/unused.jar"}}

	files := RuntimeFilesIfNeeded(context.Background(), []string{
		"/cache/skiko-awt-0.7.85.jar",
		"/cache/skiko-awt-runtime-macos-arm64-0.7.85.jar",
		"/cache/skiko-awt-0.7.90.jar",
	}, resolver, linuxX64)

	assert.Empty(t, files)
	assert.Empty(t, resolver.requested, "resolver must not be consulted when a runtime jar is present")
}

func TestRuntimeFilesIfNeeded_BestEffort(t *testing.T) {
	cp := []string{"/cache/skiko-awt-0.7.85.jar"}

	t.Run("resolver error", func(t *testing.T) {
		files := RuntimeFilesIfNeeded(context.Background(), cp, &fakeResolver{err: errors.New("offline")}, linuxX64)
		assert.Empty(t, files)
	})

	t.Run("resolver panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			files := RuntimeFilesIfNeeded(context.Background(), cp, &fakeResolver{panics: true}, linuxX64)
			assert.Empty(t, files)
		})
	})

	t.Run("no resolver", func(t *testing.T) {
		assert.Empty(t, RuntimeFilesIfNeeded(context.Background(), cp, nil, linuxX64))
	})

	t.Run("no skiko", func(t *testing.T) {
		resolver := &fakeResolver{files: []string{"/x.jar"}}
		assert.Empty(t, RuntimeFilesIfNeeded(context.Background(), []string{"/cache/app.jar"}, resolver, linuxX64))
		assert.Empty(t, resolver.requested)
	})

	t.Run("blank version", func(t *testing.T) {
		resolver := &fakeResolver{files: []string{"/x.jar"}}
		assert.Empty(t, RuntimeFilesIfNeeded(context.Background(), []string{"/cache/skiko-awt-.jar"}, resolver, linuxX64))
		assert.Empty(t, resolver.requested)
	})
}
