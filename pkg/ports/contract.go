package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/previewkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPreviewStoreContract runs a suite of tests to verify that a PreviewStore implementation
// adheres to the defined interface contract.
func RunPreviewStoreContract(t *testing.T, store PreviewStore) {
	ctx := context.Background()
	target := "contract.PreviewKt.Preview" + time.Now().Format("20060102150405")

	newRequest := func(fqName string) *domain.PreviewRequest {
		return &domain.PreviewRequest{
			Host: domain.HostConfig{
				JavaExecutable: "/opt/jdk/bin/java",
				HostClasspath:  "/cache/preview-rpc.jar",
			},
			PreviewClasspath: "/build/classes:/cache/ui-tooling.jar",
			PreviewFqName:    fqName,
			ReceivedAt:       time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		req := newRequest(target)

		err := store.Save(ctx, req)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, target)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, req.Host, loaded.Host)
		assert.Equal(t, req.PreviewClasspath, loaded.PreviewClasspath)
		assert.True(t, req.ReceivedAt.Equal(loaded.ReceivedAt))
	})

	t.Run("Save Replaces", func(t *testing.T) {
		req := newRequest(target)
		req.PreviewClasspath = "/other.jar"
		require.NoError(t, store.Save(ctx, req))

		loaded, err := store.Load(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, "/other.jar", loaded.PreviewClasspath)
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, target)
		require.NoError(t, err)
		loaded.PreviewClasspath = "mutated"

		again, err := store.Load(ctx, target)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.PreviewClasspath)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+target)
		assert.ErrorIs(t, err, domain.ErrPreviewNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newRequest(target)))

		err := store.Delete(ctx, target)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, target)
		assert.ErrorIs(t, err, domain.ErrPreviewNotFound, "Load after Delete should return ErrPreviewNotFound")

		assert.NoError(t, store.Delete(ctx, target), "Delete of a missing target should not fail")
	})

	t.Run("Target Named Like Internal Key", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newRequest(target)))
		require.NoError(t, store.Save(ctx, newRequest("index")))
		defer func() {
			_ = store.Delete(ctx, "index")
			_ = store.Delete(ctx, target)
		}()

		targets, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, targets, "index")
		assert.Contains(t, targets, target)

		loaded, err := store.Load(ctx, "index")
		require.NoError(t, err)
		assert.Equal(t, "index", loaded.PreviewFqName)
	})

	t.Run("List", func(t *testing.T) {
		t1 := target + "-1"
		t2 := target + "-2"
		_ = store.Save(ctx, newRequest(t1))
		_ = store.Save(ctx, newRequest(t2))

		defer func() {
			_ = store.Delete(ctx, t1)
			_ = store.Delete(ctx, t2)
		}()

		targets, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, targets, t1)
		assert.Contains(t, targets, t2)
	})
}
