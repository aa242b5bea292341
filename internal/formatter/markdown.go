// Package formatter aligns Markdown tables by display width.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"applyhome/pkg/metadata"
)

// FormatMarkdown aligns every table in content. A metadata block, when present,
// is re-signed so the document still verifies after formatting.
func FormatMarkdown(content string) (string, error) {
	meta, cleanContent := metadata.Extract(content)

	formatted := AlignTables(cleanContent)

	if meta == nil {
		return formatted, nil
	}

	return metadata.Sign(formatted, *meta), nil
}

// AlignTables pads the cells of every pipe table so columns line up. Fenced code
// blocks are left untouched.
func AlignTables(content string) string {
	lines := strings.Split(content, "\n")

	var (
		formattedLines []string
		tableBuffer    []string
		fence          Fence
	)

	flush := func() {
		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}
	}

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if fence.Step(line) {
			flush()

			formattedLines = append(formattedLines, line)

			continue
		}

		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		flush()

		formattedLines = append(formattedLines, line)
	}

	flush()

	return strings.Join(formattedLines, "\n")
}

// SplitRow splits a table row on unescaped pipes and trims each cell.
func SplitRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")

	if strings.HasSuffix(row, "|") && !strings.HasSuffix(row, `\|`) {
		row = strings.TrimSuffix(row, "|")
	}

	var (
		cells []string
		sb    strings.Builder
	)

	for i := 0; i < len(row); i++ {
		switch {
		case row[i] == '\\' && i+1 < len(row) && row[i+1] == '|':
			sb.WriteString(`\|`)
			i++
		case row[i] == '|':
			cells = append(cells, strings.TrimSpace(sb.String()))
			sb.Reset()
		default:
			sb.WriteByte(row[i])
		}
	}

	return append(cells, strings.TrimSpace(sb.String()))
}

// IsSeparatorRow reports whether cells form a header separator such as "| --- | :-: |".
func IsSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		trim := strings.NewReplacer("-", "", ":", "", " ", "").Replace(cell)
		if trim != "" || cell == "" {
			return false
		}
	}

	return true
}

func processTable(rows []string) []string {
	// Needs at least a header and a separator.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, SplitRow(row))
	}

	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	separatorRowIdx := -1
	if IsSeparatorRow(table[1]) {
		separatorRowIdx = 1
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if i == separatorRowIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				content := ""
				if j < len(row) {
					content = row[j]
				}

				sb.WriteString(content)

				if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
					sb.WriteString(strings.Repeat(" ", padding))
				}
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
