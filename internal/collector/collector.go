// Package collector runs one collection pass over every subscription category.
package collector

import (
	"context"
	"fmt"
	"time"

	"applyhome/internal/aggregator"
	"applyhome/internal/endpoint"
	"applyhome/internal/fetcher"
	"applyhome/internal/logger"
	"applyhome/internal/models"
	"applyhome/internal/normalizer"
	"applyhome/internal/pacing"
	"applyhome/internal/timezone"
)

// Fetcher pages through one category.
type Fetcher interface {
	FetchCategory(ctx context.Context, category endpoint.Category, maxPages int) ([]models.RawRecord, fetcher.Outcome)
}

// CategoryReport describes what happened to one category.
type CategoryReport struct {
	Label   string
	Outcome fetcher.Outcome
	Stats   normalizer.Stats
}

// ReportFunc observes each finished category.
type ReportFunc func(CategoryReport)

// Options configures a Collector.
type Options struct {
	Categories    []endpoint.Category
	MaxPages      int
	CategoryDelay time.Duration
	Sleep         pacing.SleepFunc
	Now           func() time.Time
	OnCategory    ReportFunc
	Logger        *logger.Logger
}

// Collector fetches, filters and merges listings.
type Collector struct {
	fetcher   Fetcher
	processor *normalizer.Processor
	opts      Options
	log       *logger.Logger
}

// New creates a collector. Unset options fall back to every category, pacing.Sleep and timezone.Now.
func New(f Fetcher, opts Options) *Collector {
	if opts.Categories == nil {
		opts.Categories = endpoint.All()
	}

	if opts.Sleep == nil {
		opts.Sleep = pacing.Sleep
	}

	if opts.Now == nil {
		opts.Now = timezone.Now
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Collector{
		fetcher:   f,
		processor: normalizer.NewProcessor(),
		opts:      opts,
		log:       log.With("component", "collector"),
	}
}

// Collect runs every category in order and aggregates the kept listings.
// Category failures are logged and do not stop the run; cancellation does.
func (c *Collector) Collect(ctx context.Context) (models.RunResult, error) {
	today := timezone.Today(c.opts.Now())
	results := make([]aggregator.CategoryResult, 0, len(c.opts.Categories))

	c.log.Info("collection started", "today", today, "categories", len(c.opts.Categories), "max_pages", c.opts.MaxPages)

	for i, category := range c.opts.Categories {
		records, outcome := c.fetcher.FetchCategory(ctx, category, c.opts.MaxPages)
		if err := ctx.Err(); err != nil {
			return models.RunResult{}, fmt.Errorf("collect %s: %w", category.Label, err)
		}

		kept, stats := c.processor.ProcessAll(records, category.Label, today)

		c.log.Info("category processed",
			"category", category.Label,
			"status", outcome.Status.String(),
			"pages", outcome.Pages,
			"fetched", len(records),
			"kept", stats.Kept,
			"dropped", stats.Dropped(),
		)

		if c.opts.OnCategory != nil {
			c.opts.OnCategory(CategoryReport{Label: category.Label, Outcome: outcome, Stats: stats})
		}

		results = append(results, aggregator.CategoryResult{Label: category.Label, Listings: kept})

		if i < len(c.opts.Categories)-1 {
			if err := c.opts.Sleep(ctx, c.opts.CategoryDelay); err != nil {
				return models.RunResult{}, fmt.Errorf("collect: %w", err)
			}
		}
	}

	res := aggregator.Aggregate(results)
	c.log.Info("collection finished", "total", res.Total())

	return res, nil
}
