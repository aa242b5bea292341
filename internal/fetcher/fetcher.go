// Package fetcher pages through one subscription category of the API.
package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"applyhome/internal/endpoint"
	"applyhome/internal/logger"
	"applyhome/internal/models"
	"applyhome/pkg/textutil"
)

// PageSize is the perPage value requested from the API.
const PageSize = 100

// bodyPreviewChars bounds the error body logged for a failed first page.
const bodyPreviewChars = 200

// Fetch errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrDecode           = errors.New("response is not valid JSON")
)

// PageStatus classifies the result of one page request.
type PageStatus int

const (
	// PageContinue means the page carried records.
	PageContinue PageStatus = iota
	// PageEnd means the page was empty.
	PageEnd
	// PageUnavailable means the category is not served (404).
	PageUnavailable
	// PageFailed covers any other status, undecodable bodies and transport errors.
	PageFailed
)

// String returns the lower-case status name shown in the category report.
func (s PageStatus) String() string {
	switch s {
	case PageContinue:
		return "continue"
	case PageEnd:
		return "end"
	case PageUnavailable:
		return "unavailable"
	case PageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PageResult is the outcome of a single page request.
type PageResult struct {
	Status     PageStatus
	Records    []models.RawRecord
	StatusCode int
	Err        error
}

// Outcome summarizes the pagination of one category.
type Outcome struct {
	Pages   int
	Records int
	Status  PageStatus
	Err     error
}

// PageFunc observes every page that returned records.
type PageFunc func(label string, page, count int)

// Client fetches category pages from the subscription API.
type Client struct {
	http       *resty.Client
	serviceKey string
	log        *logger.Logger
	onPage     PageFunc
}

// Option configures a Client.
type Option func(*Client)

// WithPageFunc registers a callback invoked for every non-empty page.
func WithPageFunc(fn PageFunc) Option {
	return func(c *Client) {
		c.onPage = fn
	}
}

// NewClient creates a client for baseURL. The service key is percent-decoded once.
func NewClient(baseURL, serviceKey string, timeout time.Duration, log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.Discard()
	}

	log = log.With("component", "fetcher")

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(log).
		SetHeader("Accept", "application/json")

	c := &Client{
		http:       rc,
		serviceKey: textutil.UnescapeOnce(serviceKey),
		log:        log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchCategory requests pages 1, 2, ... of category until a short page, an empty page,
// maxPages (when > 0) or an error. Records from pages fetched before a failure are kept.
func (c *Client) FetchCategory(ctx context.Context, category endpoint.Category, maxPages int) ([]models.RawRecord, Outcome) {
	var (
		records []models.RawRecord
		outcome = Outcome{Status: PageEnd}
	)

	log := c.log.With("category", category.Label)

	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		res := c.fetchPage(ctx, category, page)
		outcome.Pages = page

		switch res.Status {
		case PageContinue:
		case PageEnd:
			log.Debug("no more data", "page", page)
			outcome.Records = len(records)

			return records, outcome
		case PageUnavailable:
			log.Warn("category not served by API", "page", page)
			outcome.Status = PageUnavailable
			outcome.Records = len(records)

			return records, outcome
		default:
			log.Error("page request failed", "page", page, "status_code", res.StatusCode, "error", res.Err)
			outcome.Status = PageFailed
			outcome.Err = res.Err
			outcome.Records = len(records)

			return records, outcome
		}

		records = append(records, res.Records...)
		if c.onPage != nil {
			c.onPage(category.Label, page, len(res.Records))
		}

		if len(res.Records) < PageSize {
			break
		}
	}

	outcome.Records = len(records)

	return records, outcome
}

type pageBody struct {
	Data []models.RawRecord `json:"data"`
}

func (c *Client) fetchPage(ctx context.Context, category endpoint.Category, page int) PageResult {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"serviceKey": c.serviceKey,
			"page":       strconv.Itoa(page),
			"perPage":    strconv.Itoa(PageSize),
			"returnType": "json",
		}).
		Get("/" + category.ResourcePath)
	if err != nil {
		return PageResult{Status: PageFailed, Err: fmt.Errorf("request page %d: %w", page, err)}
	}

	code := resp.StatusCode()

	switch {
	case code == http.StatusNotFound:
		return PageResult{Status: PageUnavailable, StatusCode: code}
	case code != http.StatusOK:
		if page == 1 {
			c.log.Error("API error response",
				"category", category.Label,
				"status_code", code,
				"body", textutil.Truncate(resp.String(), bodyPreviewChars),
			)
		}

		return PageResult{
			Status:     PageFailed,
			StatusCode: code,
			Err:        fmt.Errorf("%w: %d on page %d", ErrUnexpectedStatus, code, page),
		}
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return PageResult{Status: PageEnd, StatusCode: code}
	}

	var decoded pageBody
	if err := json.Unmarshal(body, &decoded); err != nil {
		return PageResult{
			Status:     PageFailed,
			StatusCode: code,
			Err:        fmt.Errorf("%w: page %d: %v", ErrDecode, page, err),
		}
	}

	if len(decoded.Data) == 0 {
		return PageResult{Status: PageEnd, StatusCode: code}
	}

	return PageResult{Status: PageContinue, Records: decoded.Data, StatusCode: code}
}
