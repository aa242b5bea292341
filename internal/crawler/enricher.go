package crawler

import (
	"context"
	"fmt"
	"time"

	"applyhome/internal/logger"
	"applyhome/internal/models"
	"applyhome/internal/pacing"
	"applyhome/pkg/textutil"
)

// NoURL is stored as notice text when a listing has no usable notice URL.
const NoURL = "URL 없음"

// NoticeFetcher returns the notice text for a URL.
type NoticeFetcher interface {
	FetchNoticeText(ctx context.Context, url string) string
}

// ProgressFunc is called before each listing is enriched; i is 1-based.
type ProgressFunc func(i, n int, l *models.Listing)

// EnrichStats counts the outcome of Enrich.
type EnrichStats struct {
	Fetched int
	Failed  int
	NoURL   int
}

// Enricher attaches notice text to listings, one page at a time.
type Enricher struct {
	fetcher NoticeFetcher
	delay   time.Duration
	sleep   pacing.SleepFunc
	log     *logger.Logger
}

// NewEnricher creates an enricher that waits delay after every fetched page except the last.
func NewEnricher(f NoticeFetcher, delay time.Duration, sleep pacing.SleepFunc, log *logger.Logger) *Enricher {
	if sleep == nil {
		sleep = pacing.Sleep
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Enricher{
		fetcher: f,
		delay:   delay,
		sleep:   sleep,
		log:     log.With("component", "enricher"),
	}
}

// Enrich fills NoticeText of every listing in place. Only cancellation is returned as an error.
func (e *Enricher) Enrich(ctx context.Context, listings []models.Listing, progress ProgressFunc) (EnrichStats, error) {
	var stats EnrichStats

	for i := range listings {
		l := &listings[i]

		if progress != nil {
			progress(i+1, len(listings), l)
		}

		if !hasNoticeURL(l) {
			l.NoticeText = NoURL
			stats.NoURL++

			continue
		}

		l.NoticeText = e.fetcher.FetchNoticeText(ctx, l.NoticeURL)
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("enrich: %w", err)
		}

		if IsFailure(l.NoticeText) {
			stats.Failed++
		} else {
			stats.Fetched++
		}

		if i < len(listings)-1 {
			if err := e.sleep(ctx, e.delay); err != nil {
				return stats, fmt.Errorf("enrich: %w", err)
			}
		}
	}

	e.log.Info("enrichment finished", "fetched", stats.Fetched, "failed", stats.Failed, "no_url", stats.NoURL)

	return stats, nil
}

// hasNoticeURL reports whether l carries an absolute http(s) notice URL.
func hasNoticeURL(l *models.Listing) bool {
	return models.Available(l.NoticeURL) && textutil.IsHTTPURL(l.NoticeURL)
}
