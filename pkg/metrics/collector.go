package metrics

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/cuemby/fdbexporter/pkg/fetcher"
	"github.com/cuemby/fdbexporter/pkg/log"
	"github.com/cuemby/fdbexporter/pkg/status"
	"github.com/rs/zerolog"
)

// DefaultPeriod is the pause between two scrapes
const DefaultPeriod = 15 * time.Second

// Collector periodically fetches the status document and applies it to an
// Exporter
type Collector struct {
	fetcher  fetcher.Fetcher
	source   string
	exporter *Exporter
	period   time.Duration
	logger   zerolog.Logger

	// unix nanoseconds of the last successful tick, 0 before the first
	lastSuccess atomic.Int64
}

// NewCollector creates a new metrics collector
func NewCollector(f fetcher.Fetcher, e *Exporter, period time.Duration) *Collector {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Collector{
		fetcher:  f,
		source:   fetcher.Source(f),
		exporter: e,
		period:   period,
		logger:   log.WithComponent("collector"),
	}
}

// Run collects immediately, then again one period after each tick has
// finished. It returns ctx.Err() on shutdown and the error of a tick that
// hit a binding failure, which retrying cannot fix.
func (c *Collector) Run(ctx context.Context) error {
	c.logger.Info().Dur("period", c.period).Msg("Starting collector")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Collector stopped")
			return ctx.Err()
		case <-timer.C:
		}

		if err := c.Collect(ctx); errors.Is(err, fetcher.ErrBindingFailure) {
			return err
		}
		timer.Reset(c.period)
	}
}

// Collect runs a single tick: fetch, decode, convert. Failures are counted
// and logged, then returned. Previously published values are kept.
func (c *Collector) Collect(ctx context.Context) error {
	t := NewTimer()
	defer t.ObserveDuration(c.exporter.scrapeDuration)
	c.exporter.scrapes.Inc()

	ft := NewTimer()
	s, err := fetcher.FetchStatus(ctx, c.fetcher)
	ft.ObserveDurationVec(c.exporter.fetchDuration, c.source)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.exporter.RecordError(err)
		c.exporter.lastScrapeError.Set(1)

		event := c.logger.Warn()
		if errors.Is(err, fetcher.ErrBindingFailure) {
			event = c.logger.Error()
		}
		var decodeErr *status.DecodeError
		if errors.As(err, &decodeErr) && decodeErr.Path != "" {
			event = event.Str("path", decodeErr.Path)
		}
		event.Str("source", c.source).Err(err).Msg("Scrape failed")
		return err
	}

	c.exporter.Apply(s)
	c.exporter.lastScrapeError.Set(0)
	c.lastSuccess.Store(time.Now().UnixNano())
	c.logger.Debug().Dur("duration", t.Duration()).Msg("Scrape complete")
	return nil
}

// LastSuccess returns when the last tick succeeded. The zero time means no
// tick has succeeded yet.
func (c *Collector) LastSuccess() time.Time {
	ns := c.lastSuccess.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Ready reports whether at least one tick has succeeded
func (c *Collector) Ready() bool {
	return c.lastSuccess.Load() != 0
}
