package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/previewkit/pkg/adapters/memory"
	"github.com/aretw0/previewkit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	for _, target := range []string{"a.One", "a.Two"} {
		require.NoError(t, store.Save(context.Background(), &domain.PreviewRequest{
			Host:          domain.HostConfig{JavaExecutable: "/jdk/bin/java"},
			PreviewFqName: target,
		}))
	}
	return store
}

func TestListPreviews(t *testing.T) {
	handler := NewHandler(seededStore(t), nil, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/previews", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got []domain.PreviewRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a.One", got[0].PreviewFqName)
}

func TestGetAndDeletePreview(t *testing.T) {
	store := seededStore(t)
	handler := NewHandler(store, nil, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/previews/a.Two", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"preview_fq_name":"a.Two"`)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("DELETE", "/previews/a.Two", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/previews/a.Two", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthInfoAndCORS(t *testing.T) {
	handler := NewHandler(memory.NewStore(), nil, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	assert.Contains(t, w.Body.String(), `"app":"previewkit"`)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/previews", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "previewkit_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	w := httptest.NewRecorder()
	NewHandler(memory.NewStore(), nil, reg).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "previewkit_test_total 1")

	w = httptest.NewRecorder()
	NewHandler(memory.NewStore(), nil, nil).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeEvents(t *testing.T) {
	streams := NewStreamManager()
	srv := httptest.NewServer(NewHandler(memory.NewStore(), streams, nil))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	// Skip "data: connected" and the blank separator.
	_, _ = reader.ReadString('\n')
	_, _ = reader.ReadString('\n')

	streams.Publish(&domain.PreviewRequest{PreviewFqName: "a.Live"})

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: preview\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "data: {"))
	assert.Contains(t, line, `"a.Live"`)
}

func TestStreamManager_CancelIsIdempotent(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.NotPanics(t, func() { sm.Publish(&domain.PreviewRequest{PreviewFqName: "x"}) })
}
