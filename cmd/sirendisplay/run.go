// cmd/sirendisplay/run.go
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/siren-display/internal/config"
	"github.com/tamzrod/siren-display/internal/dispatch"
	"github.com/tamzrod/siren-display/internal/display"
	"github.com/tamzrod/siren-display/internal/logfields"
	"github.com/tamzrod/siren-display/internal/mapper"
	"github.com/tamzrod/siren-display/internal/metrics"
	"github.com/tamzrod/siren-display/internal/poller"
	"github.com/tamzrod/siren-display/internal/publish"
	"github.com/tamzrod/siren-display/internal/screen"
	"github.com/tamzrod/siren-display/internal/web"
	"github.com/tamzrod/siren-display/internal/writer"
)

// runOptions carries what main decides outside the config file.
// A nil Sink means the one built from cfg.Display.
type runOptions struct {
	Once bool
	Log  *slog.Logger
	Sink display.Sink
}

// run wires the pipeline and blocks until ctx is cancelled.
// The sink is closed exactly once on every exit path once it exists.
func run(ctx context.Context, cfg *config.Config, opts runOptions) error {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	// --------------------
	// Rendering chain (fatal on asset errors)
	// --------------------

	renderer, err := mapper.NewFromFile(cfg.Map.Artwork, mapper.Options{Oversample: cfg.Map.Oversample})
	if err != nil {
		return err
	}
	composer, err := screen.New(renderer, screen.Options{
		Margin: image.Pt(cfg.Map.MarginX, cfg.Map.MarginY),
		Logger: log,
	})
	if err != nil {
		return err
	}

	// The web surface shows the display's own frames, so it is built
	// first and handed to the screen consumer as an observer.
	var observers []display.FrameObserver
	var srv *web.Server
	if cfg.HTTP.Addr != "" {
		srv, err = web.New(web.Config{
			Addr:    cfg.HTTP.Addr,
			Metrics: metrics.HTTPHandler(reg),
			Logger:  log,
		}, composer.Universe())
		if err != nil {
			return err
		}
		observers = append(observers, srv)
	}

	sink := opts.Sink
	if sink == nil {
		sink, err = buildSink(cfg.Display, image.Pt(cfg.Display.Width, cfg.Display.Height))
		if err != nil {
			return err
		}
	}

	d := dispatch.New(dispatch.WithLogger(log), dispatch.WithRecorder(rec))
	defer func() {
		if cerr := d.Close(); cerr != nil {
			log.Error("consumer shutdown failed", logfields.Error(cerr))
		}
	}()

	sc, err := display.NewScreenConsumer(composer, sink, rec, observers...)
	if err != nil {
		_ = sink.Close()
		return err
	}
	d.Register(sc)

	// --------------------
	// Optional consumers
	// --------------------

	if srv != nil {
		go func() {
			if err := srv.Start(); err != nil {
				log.Error("web surface failed", logfields.Addr(cfg.HTTP.Addr), logfields.Error(err))
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	if cfg.NATS.URL != "" {
		pub, err := publish.Connect(cfg.NATS.URL, cfg.NATS.Subject, composer.Universe(), log)
		if err != nil {
			log.Error("nats publisher disabled", logfields.URL(cfg.NATS.URL), logfields.Error(err))
		} else {
			d.Register(pub)
		}
	}

	if cfg.Modbus.Endpoint != "" {
		m, err := writer.Build(cfg.Modbus, composer.Universe())
		if err != nil {
			log.Error("register mirror disabled", logfields.Endpoint(cfg.Modbus.Endpoint), logfields.Error(err))
		} else {
			d.Register(m)
		}
	}

	if cfg.Metrics.Addr != "" {
		stopMetrics := serveMetrics(cfg.Metrics.Addr, reg, log)
		defer stopMetrics()
	}

	// --------------------
	// Polling loop
	// --------------------

	p, err := poller.Build(cfg, d, poller.WithLogger(log), poller.WithRecorder(rec))
	if err != nil {
		return err
	}

	log.Info("sirendisplay started",
		logfields.URL(cfg.Feed.URL),
		logfields.Regions(len(composer.Universe())),
		slog.Int("consumers", d.Len()))

	if opts.Once {
		res := p.PollOnce(ctx)
		if res.Err != nil {
			return fmt.Errorf("fetch: %w", res.Err)
		}
		return d.Notify(ctx, res.Snapshot)
	}

	return p.Run(ctx)
}

func buildSink(c config.DisplayConfig, canvas image.Point) (display.Sink, error) {
	switch c.Sink {
	case "none":
		return display.NullSink{Size: canvas}, nil
	default:
		return display.NewFileSink(display.FileConfig{
			Dir:        c.OutputDir,
			Size:       canvas,
			Rotate180:  c.Rotate180,
			RawBuffers: c.RawBuffers,
		})
	}
}

// serveMetrics exposes reg on addr and returns a shutdown func.
func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("metrics listening", logfields.Addr(addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", logfields.Addr(addr), logfields.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
