package crawler

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"applyhome/pkg/textutil"
)

const (
	// minDivChars is the length a content div must exceed to be kept.
	minDivChars = 50
	// minSectionChars triggers the body-text fallback when the sections are shorter.
	minSectionChars = 200
)

// contentSelector matches the notice body containers used by the subscription site.
const contentSelector = "div.content, div.detail-content, div.notice-content"

// ExtractNoticeText pulls the readable text out of a notice page: table rows first,
// then content divs, falling back to the whole body when both are thin. Whitespace is
// collapsed and the result is cut to maxChars characters.
func ExtractNoticeText(page string, maxChars int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}

	var sections []string

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var rows []string

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}

			texts := make([]string, 0, cells.Length())
			cells.Each(func(_ int, cell *goquery.Selection) {
				texts = append(texts, strings.TrimSpace(cell.Text()))
			})

			rows = append(rows, strings.Join(texts, " | "))
		})

		if len(rows) > 0 {
			sections = append(sections, strings.Join(rows, "\n"))
		}
	})

	doc.Find(contentSelector).Each(func(_ int, div *goquery.Selection) {
		text := strings.TrimSpace(div.Text())
		if utf8.RuneCountInString(text) > minDivChars {
			sections = append(sections, text)
		}
	})

	content := strings.Join(sections, "\n\n")

	if utf8.RuneCountInString(content) < minSectionChars {
		if body := doc.Find("body"); body.Length() > 0 {
			content = strings.Join(textNodes(body.First(), nil), "\n")
		}
	}

	content = textutil.CollapseBlankLines(content)
	content = textutil.NormalizeWhitespace(content)

	return textutil.Truncate(content, maxChars)
}

// textNodes collects the trimmed, non-empty text nodes under s in document order.
func textNodes(s *goquery.Selection, out []string) []string {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			if t := strings.TrimSpace(c.Text()); t != "" {
				out = append(out, t)
			}
		case "#comment":
		default:
			out = textNodes(c, out)
		}
	})

	return out
}
