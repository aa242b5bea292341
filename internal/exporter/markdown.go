package exporter

import (
	"fmt"
	"os"
	"strings"
	"time"

	"applyhome/internal/crawler"
	"applyhome/internal/formatter"
	"applyhome/internal/models"
	"applyhome/internal/timezone"
	"applyhome/pkg/metadata"
	"applyhome/pkg/textutil"
)

const (
	truncationNote    = "\n\n... (전문이 길어 일부만 표시됨) ..."
	unnamedListing    = "이름없음"
	generatedAtLayout = "2006년 01월 02일 15시 04분"
	badgeBase         = "https://img.shields.io/badge/"
)

// MarkdownOptions controls RenderMarkdown.
type MarkdownOptions struct {
	GeneratedAt  time.Time
	Today        string
	ExcerptChars int
}

// badgeText escapes a shields.io path segment.
func badgeText(s string) string {
	return strings.NewReplacer("-", "--", "_", "__", " ", "_").Replace(s)
}

func badge(alt, label, message, color string) string {
	return fmt.Sprintf("![%s](%s%s-%s-%s)", alt, badgeBase, badgeText(label), badgeText(message), color)
}

// cell makes a value safe for a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")

	return strings.ReplaceAll(s, "|", `\|`)
}

func link(url string) string {
	return fmt.Sprintf("[%s](%s)", cell(url), url)
}

// statusBadge is 접수예정 for a start date on or after today, 접수완료 for an earlier
// date, and nothing when the start date is missing.
func statusBadge(l models.Listing, today string) string {
	switch {
	case isUpcoming(l, today):
		return badge("상태", "상태", "접수예정", "blue")
	case models.Available(l.ReceptionStartDate):
		return badge("상태", "상태", "접수완료", "gray")
	default:
		return ""
	}
}

func showNotice(text string) bool {
	return text != "" && text != crawler.NoURL && !crawler.IsFailure(text)
}

// RenderMarkdown renders the listings document without the metadata block.
func RenderMarkdown(res models.RunResult, opts MarkdownOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# 🏠 전체 주택유형 청약정보 (%d건)\n\n", res.Total())

	var summary []models.CategoryCount
	for _, c := range res.Counts {
		if c.Count > 0 {
			summary = append(summary, c)
		}
	}

	if len(summary) > 0 {
		sb.WriteString("## 📊 주택 유형별 현황\n\n")

		for _, c := range summary {
			fmt.Fprintf(&sb, "- **%s**: %d건\n", c.Label, c.Count)
		}

		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "**생성일시:** %s\n\n", opts.GeneratedAt.In(timezone.Location).Format(generatedAtLayout))
	sb.WriteString("---\n\n")

	for i, l := range res.Listings {
		writeListing(&sb, i+1, l, opts)
	}

	return sb.String()
}

func writeListing(sb *strings.Builder, n int, l models.Listing, opts MarkdownOptions) {
	name := l.HouseName
	if strings.TrimSpace(name) == "" {
		name = unnamedListing
	}

	fmt.Fprintf(sb, "## %d. %s\n\n", n, name)

	fmt.Fprintf(sb, "%s %s %s\n\n",
		badge("주택유형", "주택유형", l.Category, "blue"),
		badge("지역", "지역", l.SupplyRegion, "green"),
		badge("유형", "유형", l.HouseSection, "orange"),
	)

	if status := statusBadge(l, opts.Today); status != "" {
		sb.WriteString(status + "\n\n")
	}

	writeTable(sb, "### 📋 기본 정보", "내용", [][2]string{
		{"주택유형", cell(l.Category)},
		{"주택구분", cell(l.HouseSection)},
		{"세부구분", cell(l.HouseDetailSection)},
		{"공급지역", cell(l.SupplyRegion)},
		{"공급주소", cell(l.SupplyAddress)},
		{"총 공급세대", cell(l.TotalSupply)},
		{"전용면적", cell(l.ExclusiveArea)},
		{"입주예정월", cell(l.MoveInMonth)},
	})

	writeTable(sb, "### 📅 청약 일정", "일정", [][2]string{
		{"모집공고일", cell(l.RecruitNoticeDate)},
		{"접수시작일", cell(l.ReceptionStartDate)},
		{"접수종료일", cell(l.ReceptionEndDate)},
		{"당첨발표일", cell(l.WinnerAnnounceDate)},
		{"계약시작일", cell(l.ContractStartDate)},
		{"계약종료일", cell(l.ContractEndDate)},
	})

	contact := [][2]string{
		{"사업주체", cell(l.Developer)},
		{"시공사", cell(l.Constructor)},
		{"문의전화", cell(l.ContactPhone)},
	}

	if models.Available(l.HomepageURL) {
		contact = append(contact, [2]string{"홈페이지", link(l.HomepageURL)})
	}

	if models.Available(l.NoticeURL) {
		contact = append(contact, [2]string{"모집공고", link(l.NoticeURL)})
	}

	writeTable(sb, "### 📞 연락처 및 사업정보", "내용", contact)

	if showNotice(l.NoticeText) {
		excerpt := textutil.Truncate(l.NoticeText, opts.ExcerptChars)
		fence := formatter.FenceFor(excerpt)

		sb.WriteString("### 📄 모집공고문 전문\n\n" + fence + "\n")
		sb.WriteString(excerpt)

		if textutil.Truncated(l.NoticeText, opts.ExcerptChars) {
			sb.WriteString(truncationNote)
		}

		sb.WriteString("\n" + fence + "\n\n")
	}

	sb.WriteString("---\n\n")
}

// writeTable writes a two-column table. Values must already be cell-safe.
func writeTable(sb *strings.Builder, title, valueHeader string, rows [][2]string) {
	fmt.Fprintf(sb, "%s\n\n| 항목 | %s |\n| --- | --- |\n", title, valueHeader)

	for _, r := range rows {
		fmt.Fprintf(sb, "| %s | %s |\n", r[0], r[1])
	}

	sb.WriteString("\n")
}

// WriteMarkdown renders, aligns and signs the document, then writes it to path.
func WriteMarkdown(path string, res models.RunResult, opts MarkdownOptions) (metadata.Metadata, error) {
	meta := metadata.New(opts.GeneratedAt, res.Total())

	doc := metadata.Sign(formatter.AlignTables(RenderMarkdown(res, opts)), meta)

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return meta, fmt.Errorf("write %s: %w", path, err)
	}

	return meta, nil
}
