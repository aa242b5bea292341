// Package report renders console summaries of a collection run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"applyhome/internal/collector"
	"applyhome/internal/crawler"
	"applyhome/internal/exporter"
	"applyhome/internal/models"
)

// NewTable returns a rounded table writing to w.
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	return t
}

// Categories renders the per-category fetch outcome.
func Categories(w io.Writer, reports []collector.CategoryReport) {
	t := NewTable(w)
	t.AppendHeader(table.Row{"주택유형", "상태", "페이지", "수신", "유효", "마감", "날짜없음", "형식오류"})

	for _, r := range reports {
		t.AppendRow(table.Row{
			r.Label,
			r.Outcome.Status.String(),
			r.Outcome.Pages,
			r.Outcome.Records,
			r.Stats.Kept,
			r.Stats.Expired,
			r.Stats.NoClosingDate,
			r.Stats.InvalidDate,
		})
	}

	t.SetColumnConfigs(numericColumns(3, 8))
	t.Render()
}

// Summary is the final state of a run.
type Summary struct {
	Result   models.RunResult
	Upcoming int
	Notices  *crawler.EnrichStats
	Files    exporter.Targets
	RunID    string
}

// Final renders the closing summary: counts per category, then the written files.
func Final(w io.Writer, s Summary) {
	t := NewTable(w)
	t.SetTitle("청약정보 수집 결과")
	t.AppendHeader(table.Row{"주택유형", "건수"})

	for _, c := range s.Result.Counts {
		t.AppendRow(table.Row{c.Label, c.Count})
	}

	t.AppendFooter(table.Row{"합계", s.Result.Total()})
	t.SetColumnConfigs(numericColumns(2, 2))
	t.Render()

	files := NewTable(w)
	files.AppendRows([]table.Row{
		{"향후 청약 가능", s.Upcoming},
		{"JSON", s.Files.JSON},
		{"Excel", s.Files.XLSX},
		{"Markdown", s.Files.Markdown},
		{"Run ID", s.RunID},
	})

	if s.Notices != nil {
		files.AppendRow(table.Row{"모집공고문", noticeLine(*s.Notices)})
	}

	files.Render()
}

func noticeLine(s crawler.EnrichStats) string {
	return fmt.Sprintf("성공 %d / 실패 %d / URL 없음 %d", s.Fetched, s.Failed, s.NoURL)
}

func numericColumns(from, to int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, to-from+1)
	for n := from; n <= to; n++ {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}

	return configs
}

// Bar renders a width-wide progress bar for step i of n, e.g. "[██████░░░░]  60%".
func Bar(i, n, width int) string {
	if n <= 0 || width <= 0 {
		return ""
	}

	i = min(max(i, 0), n)
	filled := i * width / n

	return fmt.Sprintf("[%s%s] %3d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		i*100/n,
	)
}
