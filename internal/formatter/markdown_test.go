package formatter

import (
	"strings"
	"testing"
	"time"

	"applyhome/pkg/metadata"
)

func TestFormatMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Basic table formatting",
			input: `
| Header 1 | Header 2 |
| --- | --- |
| val 1 | val 2 |
`,
			expected: `
| Header 1 | Header 2 |
| -------- | -------- |
| val 1    | val 2    |
`,
		},
		{
			name: "Fix excessive dashes",
			input: `
| Col A | Col B |
| ---------------------- | ---------------------------------- |
| A | B |
`,
			expected: `
| Col A | Col B |
| ----- | ----- |
| A     | B     |
`,
		},
		{
			name: "Mixed content",
			input: `
# Title

| H1 | H2 |
| -- | -- |
| v1 | v2 |

Text after table.
`,
			expected: `
# Title

| H1  | H2  |
| --- | --- |
| v1  | v2  |

Text after table.
`,
		},
		{
			name: "Hangul is double width",
			input: `
| 항목 | 내용 |
| --- | --- |
| 주택명 | Sample Tower |
| 공급지역 | 서울 |
`,
			// 공급지역 is 8 columns wide, Sample Tower is 12.
			expected: `
| 항목     | 내용         |
| -------- | ------------ |
| 주택명   | Sample Tower |
| 공급지역 | 서울         |
`,
		},
		{
			name: "Escaped pipes stay in their cell",
			input: `
| 항목 | 내용 |
| --- | --- |
| 주소 | A \| B |
`,
			expected: `
| 항목 | 내용   |
| ---- | ------ |
| 주소 | A \| B |
`,
		},
		{
			name: "Fenced code is untouched",
			input: "```\n| a | b |\n| - | - |\n```",
			expected: "```\n| a | b |\n| - | - |\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatMarkdown(strings.TrimSpace(tt.input))
			if err != nil {
				t.Errorf("FormatMarkdown() error = %v", err)

				return
			}

			if strings.TrimSpace(got) != strings.TrimSpace(tt.expected) {
				t.Errorf("FormatMarkdown() = \n%v\nwant \n%v", got, tt.expected)
			}
		})
	}
}

func TestFormatMarkdown_ResignsMetadata(t *testing.T) {
	meta := metadata.New(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), 3)
	signed := metadata.Sign("| a | b |\n| --- | --- |\n| long value | x |", meta)

	got, err := FormatMarkdown(signed)
	if err != nil {
		t.Fatalf("FormatMarkdown() error = %v", err)
	}

	if !strings.Contains(got, "| long value | x   |") {
		t.Errorf("table not aligned:\n%s", got)
	}

	verified, err := metadata.Verify(got)
	if err != nil {
		t.Fatalf("formatted document does not verify: %v", err)
	}

	if verified.RunID != meta.RunID || verified.Listings != 3 {
		t.Errorf("metadata not preserved: %+v", verified)
	}
}
