package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"applyhome/internal/collector"
	"applyhome/internal/crawler"
	"applyhome/internal/exporter"
	"applyhome/internal/fetcher"
	"applyhome/internal/models"
	"applyhome/internal/normalizer"
)

func TestCategories(t *testing.T) {
	var buf bytes.Buffer

	Categories(&buf, []collector.CategoryReport{
		{
			Label:   "아파트",
			Outcome: fetcher.Outcome{Pages: 2, Records: 137, Status: fetcher.PageEnd},
			Stats:   normalizer.Stats{Kept: 12, Expired: 125},
		},
		{
			Label:   "분양상가",
			Outcome: fetcher.Outcome{Pages: 1, Status: fetcher.PageUnavailable},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "아파트")
	assert.Contains(t, out, "137")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "╭")
}

func TestFinal(t *testing.T) {
	var buf bytes.Buffer

	Final(&buf, Summary{
		Result: models.RunResult{
			Listings: make([]models.Listing, 3),
			Counts:   []models.CategoryCount{{Label: "아파트", Count: 2}, {Label: "오피스텔", Count: 1}},
		},
		Upcoming: 1,
		Notices:  &crawler.EnrichStats{Fetched: 2, Failed: 1},
		Files:    exporter.Targets{JSON: "결과물/청약정보_20250620.json"},
		RunID:    "run-1",
	})

	out := buf.String()
	assert.Contains(t, out, "합계")
	assert.Contains(t, out, "결과물/청약정보_20250620.json")
	assert.Contains(t, out, "성공 2 / 실패 1 / URL 없음 0")
	assert.Contains(t, out, "run-1")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", Bar(1, 2, 10))
	assert.Equal(t, "[██████████] 100%", Bar(7, 5, 10))
	assert.Equal(t, "[░░░░]   0%", Bar(0, 3, 4))
	assert.Empty(t, Bar(1, 0, 10))
}
