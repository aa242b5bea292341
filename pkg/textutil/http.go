package textutil

import (
	"net/url"
	"strings"
)

// BrowserUserAgent is sent to notice pages, some of which reject non-browser clients.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// BrowserHeaders returns the default headers for page scraping merged with custom ones.
func BrowserHeaders(custom map[string]string) map[string]string {
	headers := map[string]string{
		"User-Agent":      BrowserUserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "ko-KR,ko;q=0.9,en-US;q=0.8",
	}

	for k, v := range custom {
		headers[k] = v
	}

	return headers
}

// IsHTTPURL reports whether raw is an absolute http(s) URL.
func IsHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// UnescapeOnce percent-decodes s a single time. "+" is kept, since portal keys are base64.
// s is returned unchanged when it is not valid escaping.
func UnescapeOnce(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}

	return decoded
}
