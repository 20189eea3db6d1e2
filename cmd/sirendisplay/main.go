// cmd/sirendisplay/main.go
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/tamzrod/siren-display/internal/config"
	"github.com/tamzrod/siren-display/internal/logfields"
)

var version = "dev"

// CLI holds flags; every flag can also come from the environment or a
// .env file next to the binary.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (YAML). Defaults apply when empty." env:"SIRENS_CONFIG" type:"path"`
	FeedURL   string           `name:"feed-url" help:"Override feed.url." env:"SIRENS_FEED_URL"`
	Interval  time.Duration    `help:"Override poll.interval_ms." env:"SIRENS_POLL_INTERVAL"`
	Threshold int              `help:"Override poll.failure_threshold." env:"SIRENS_FAILURE_THRESHOLD"`
	OutputDir string           `name:"output-dir" help:"Override display.output_dir." env:"SIRENS_OUTPUT_DIR"`
	Once      bool             `help:"Fetch and render a single snapshot, then exit."`
	Verbose   bool             `short:"v" help:"Enable verbose logging" env:"SIRENS_VERBOSE"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func main() {
	// Missing .env is fine; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("dotenv load failed", logfields.Error(err))
	}

	var cli CLI
	kong.Parse(&cli,
		kong.Name("sirendisplay"),
		kong.Description("Polls the air-raid siren feed and renders a two-colour e-paper map."),
		kong.Vars{"version": version},
	)

	cfg, err := loadConfig(&cli)
	if err != nil {
		slog.Error("configuration rejected", logfields.Error(err))
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, runOptions{Once: cli.Once, Log: slog.Default()}); err != nil {
		slog.Error("sirendisplay stopped", logfields.Error(err))
		os.Exit(1)
	}
}

// loadConfig loads the file, applies CLI/env overrides, validates and
// normalizes, in that order.
func loadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, cli)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)
	return cfg, nil
}

func applyOverrides(cfg *config.Config, cli *CLI) {
	if cli.FeedURL != "" {
		cfg.Feed.URL = cli.FeedURL
	}
	if cli.Interval > 0 {
		cfg.Poll.IntervalMs = int(cli.Interval / time.Millisecond)
	}
	if cli.Threshold > 0 {
		cfg.Poll.FailureThreshold = cli.Threshold
	}
	if cli.OutputDir != "" {
		cfg.Display.OutputDir = cli.OutputDir
	}
}
