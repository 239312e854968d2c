package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/previewkit/pkg/adapters/memory"
	"github.com/aretw0/previewkit/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestCSSPadding(t *testing.T) {
	s := NewServer(memory.NewStore())
	ctx := context.Background()

	res, err := s.handleCSSPadding(ctx, call(map[string]any{"values": "10px 20px"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "padding: 10px 20px;", textOf(t, res))

	res, err = s.handleCSSPadding(ctx, call(map[string]any{"values": "5px", "side": "left"}))
	require.NoError(t, err)
	assert.Equal(t, "padding-left: 5px;", textOf(t, res))
}

func TestCSSPadding_Errors(t *testing.T) {
	s := NewServer(memory.NewStore())
	ctx := context.Background()

	for _, args := range []map[string]any{
		{"values": ""},
		{"values": "ten"},
		{"values": "1px", "side": "middle"},
		{"values": "1px 2px", "side": "top"},
	} {
		res, err := s.handleCSSPadding(ctx, call(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "%v", args)
	}
}

func TestPreviewTools(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), &domain.PreviewRequest{PreviewFqName: "a.B"}))
	s := NewServer(store)
	ctx := context.Background()

	res, err := s.handleListPreviews(ctx, call(nil))
	require.NoError(t, err)
	assert.Contains(t, textOf(t, res), `"preview_fq_name":"a.B"`)

	res, err = s.handleGetPreview(ctx, call(map[string]any{"target": "a.B"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	res, err = s.handleGetPreview(ctx, call(map[string]any{"target": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

type flakyStore struct {
	*memory.Store
	failing string
}

func (f *flakyStore) Load(ctx context.Context, target string) (*domain.PreviewRequest, error) {
	if target == f.failing {
		return nil, errors.New("connection reset")
	}
	return f.Store.Load(ctx, target)
}

func TestListPreviews_LoadError(t *testing.T) {
	store := &flakyStore{Store: memory.NewStore(), failing: "a.Broken"}
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.PreviewRequest{PreviewFqName: "a.Fine"}))
	require.NoError(t, store.Save(ctx, &domain.PreviewRequest{PreviewFqName: "a.Broken"}))

	res, err := NewServer(store).handleListPreviews(ctx, call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "connection reset")
}

func TestPreviewTools_EncodeError(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	// Years past 9999 cannot be encoded as RFC 3339.
	require.NoError(t, store.Save(ctx, &domain.PreviewRequest{
		PreviewFqName: "a.Future",
		ReceivedAt:    time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	s := NewServer(store)

	res, err := s.handleGetPreview(ctx, call(map[string]any{"target": "a.Future"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "encode failed")

	res, err = s.handleListPreviews(ctx, call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
