package crawler

import (
	"fmt"
	"sync"
	"time"

	"applyhome/internal/logger"
)

// AttemptResult records the result of a URL fetch attempt.
type AttemptResult struct {
	Timestamp  time.Time
	URL        string
	Error      string
	Attempt    int
	Duration   time.Duration
	StatusCode int
	Success    bool
}

// AttemptLog keeps every fetch attempt per URL in order of first use.
type AttemptLog struct {
	mu      sync.Mutex
	order   []string
	entries map[string][]AttemptResult
}

// NewAttemptLog creates an empty log.
func NewAttemptLog() *AttemptLog {
	return &AttemptLog{entries: make(map[string][]AttemptResult)}
}

// Record appends one attempt for url.
func (a *AttemptLog) Record(url string, success bool, err error, statusCode int, duration time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.entries[url]; !ok {
		a.order = append(a.order, url)
	}

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	a.entries[url] = append(a.entries[url], AttemptResult{
		URL:        url,
		Attempt:    len(a.entries[url]) + 1,
		Success:    success,
		Error:      errMsg,
		Timestamp:  time.Now(),
		Duration:   duration,
		StatusCode: statusCode,
	})
}

// Attempts returns a copy of the attempts made for url.
func (a *AttemptLog) Attempts(url string) []AttemptResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]AttemptResult, len(a.entries[url]))
	copy(out, a.entries[url])

	return out
}

// AttemptStats contains statistics about fetch attempts.
type AttemptStats struct {
	TotalURLs          int
	SuccessfulURLs     int
	FailedURLs         int
	TotalAttempts      int
	SuccessfulAttempts int
	FailedAttempts     int
}

// Stats summarizes the log.
func (a *AttemptLog) Stats() AttemptStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats := AttemptStats{TotalURLs: len(a.order)}

	for _, url := range a.order {
		results := a.entries[url]
		stats.TotalAttempts += len(results)

		urlSuccess := false

		for _, r := range results {
			if r.Success {
				stats.SuccessfulAttempts++
				urlSuccess = true
			} else {
				stats.FailedAttempts++
			}
		}

		if urlSuccess {
			stats.SuccessfulURLs++
		} else {
			stats.FailedURLs++
		}
	}

	return stats
}

// String returns a string representation of attempt stats.
func (s AttemptStats) String() string {
	return fmt.Sprintf(
		"URLs: %d total, %d success, %d failed | Attempts: %d total, %d success, %d failed",
		s.TotalURLs,
		s.SuccessfulURLs,
		s.FailedURLs,
		s.TotalAttempts,
		s.SuccessfulAttempts,
		s.FailedAttempts,
	)
}

// LogSummary logs every URL that needed more than one attempt, then the totals.
func (a *AttemptLog) LogSummary(l *logger.Logger) {
	a.mu.Lock()
	order := append([]string(nil), a.order...)
	a.mu.Unlock()

	for _, url := range order {
		results := a.Attempts(url)
		if len(results) < 2 {
			continue
		}

		last := results[len(results)-1]
		l.Info("notice fetch retried",
			"url", url,
			"attempts", len(results),
			"success", last.Success,
			"last_error", last.Error,
		)
	}

	l.Info("notice fetch summary", "stats", a.Stats().String())
}
