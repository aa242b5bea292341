// Package crawler fetches listing notice pages and extracts their text.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"applyhome/internal/config"
	"applyhome/internal/logger"
	"applyhome/internal/pacing"
	"applyhome/pkg/textutil"
)

// FailurePrefix starts every notice text that stands for a failed scrape.
const FailurePrefix = "크롤링 실패: "

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Scraper fetches notice pages with config-driven retry logic.
type Scraper struct {
	http        *resty.Client
	retryPolicy config.RetryPolicy
	maxChars    int
	sleep       pacing.SleepFunc
	attempts    *AttemptLog
	log         *logger.Logger
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithSleep replaces the wait between attempts.
func WithSleep(fn pacing.SleepFunc) ScraperOption {
	return func(s *Scraper) {
		s.sleep = fn
	}
}

// WithLogger sets the scraper logger.
func WithLogger(l *logger.Logger) ScraperOption {
	return func(s *Scraper) {
		s.log = l.With("component", "scraper")
	}
}

// NewScraper creates a scraper that keeps at most maxChars characters of page text.
func NewScraper(retryPolicy config.RetryPolicy, maxChars int, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		retryPolicy: retryPolicy,
		maxChars:    maxChars,
		sleep:       pacing.Sleep,
		attempts:    NewAttemptLog(),
		log:         logger.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.http = resty.New().
		SetTimeout(retryPolicy.GetTimeout()).
		SetRetryCount(0).
		SetLogger(s.log).
		SetHeaders(textutil.BrowserHeaders(nil))

	return s
}

// ScrapeWithMetrics returns (content, statusCode, duration, error). Transport errors and
// non-200 responses are retried up to MaxAttempts with the policy's delay between attempts.
func (s *Scraper) ScrapeWithMetrics(ctx context.Context, url string) (string, int, time.Duration, error) {
	var (
		lastErr        error
		lastStatusCode int
		totalDuration  time.Duration
	)

	for attempt := 1; attempt <= s.retryPolicy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := s.sleep(ctx, s.retryPolicy.GetRetryDelay(attempt)); err != nil {
				return "", lastStatusCode, totalDuration, err
			}
		}

		start := time.Now()
		resp, err := s.http.R().SetContext(ctx).Get(url)
		duration := time.Since(start)
		totalDuration += duration

		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, s.retryPolicy.MaxAttempts, err)
			lastStatusCode = 0
			s.attempts.Record(url, false, lastErr, 0, duration)
			s.log.Debug("notice request failed", "url", url, "attempt", attempt, "error", err)

			if ctx.Err() != nil {
				return "", 0, totalDuration, ctx.Err()
			}

			continue
		}

		lastStatusCode = resp.StatusCode()

		if lastStatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, lastStatusCode)
			s.attempts.Record(url, false, lastErr, lastStatusCode, duration)
			s.log.Debug("notice request rejected", "url", url, "attempt", attempt, "status_code", lastStatusCode)

			continue
		}

		s.attempts.Record(url, true, nil, lastStatusCode, duration)

		return resp.String(), lastStatusCode, totalDuration, nil
	}

	return "", lastStatusCode, totalDuration, lastErr
}

// Scrape fetches and returns content from the given URL.
func (s *Scraper) Scrape(ctx context.Context, url string) (string, error) {
	content, _, _, err := s.ScrapeWithMetrics(ctx, url)

	return content, err
}

// FetchNoticeText returns the extracted text of the notice page at url, or a
// FailurePrefix sentinel once every attempt has failed. It never returns an error.
func (s *Scraper) FetchNoticeText(ctx context.Context, url string) string {
	page, err := s.Scrape(ctx, url)
	if err != nil {
		s.log.Warn("notice scrape failed", "url", url, "error", err)

		return FailurePrefix + err.Error()
	}

	return ExtractNoticeText(page, s.maxChars)
}

// Attempts returns the attempt log.
func (s *Scraper) Attempts() *AttemptLog {
	return s.attempts
}

// IsFailure reports whether text is a failed-scrape sentinel.
func IsFailure(text string) bool {
	return strings.HasPrefix(text, FailurePrefix)
}
