// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/siren-display/internal/config"
	"github.com/tamzrod/siren-display/internal/poller/feed"
)

// Build constructs the feed client and the Poller from configuration.
// The client is stateless: one GET per cycle, no connection state kept.
func Build(c *cfg.Config, n Notifier, opts ...Option) (*Poller, error) {
	client, err := feed.New(feed.Config{
		URL:       c.Feed.URL,
		Timeout:   time.Duration(c.Feed.TimeoutMs) * time.Millisecond,
		MaxBytes:  c.Feed.MaxBytes,
		UserAgent: c.Feed.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			Interval:         time.Duration(c.Poll.IntervalMs) * time.Millisecond,
			FailureThreshold: c.Poll.FailureThreshold,
		},
		client,
		n,
		opts...,
	)
}
