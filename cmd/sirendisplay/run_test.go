// cmd/sirendisplay/run_test.go
package main

import (
	"context"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/siren-display/internal/config"
	"github.com/tamzrod/siren-display/internal/raster"
)

type countingSink struct {
	mu      sync.Mutex
	renders int
	closes  int
}

func (s *countingSink) Dimensions() image.Point {
	return image.Pt(config.DefaultWidth, config.DefaultHeight)
}

func (s *countingSink) Render(base, accent raster.Layer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renders++
	return nil
}

func (s *countingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *countingSink) counts() (renders, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders, s.closes
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_CancelledContextClosesSinkOnce(t *testing.T) {
	cfg := config.Default()
	sink := &countingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, cfg, runOptions{Log: quietLogger(), Sink: sink})
	require.NoError(t, err)

	renders, closes := sink.counts()
	assert.Equal(t, 0, renders)
	assert.Equal(t, 1, closes)
}

func TestRun_OnceFetchFailureClosesSinkOnce(t *testing.T) {
	cfg := config.Default()
	cfg.Feed.URL = feedServer(t, http.StatusInternalServerError, "boom").URL
	sink := &countingSink{}

	err := run(context.Background(), cfg, runOptions{Once: true, Log: quietLogger(), Sink: sink})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch")

	_, closes := sink.counts()
	assert.Equal(t, 1, closes)
}

func TestRun_OnceRendersDespiteUnknownRegion(t *testing.T) {
	cfg := config.Default()
	cfg.Feed.URL = feedServer(t, http.StatusOK, `{"Kyiv":"full","Atlantis":"full"}`).URL
	sink := &countingSink{}

	err := run(context.Background(), cfg, runOptions{Once: true, Log: quietLogger(), Sink: sink})
	require.NoError(t, err)

	renders, closes := sink.counts()
	assert.Equal(t, 1, renders)
	assert.Equal(t, 1, closes)
}
