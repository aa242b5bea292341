package validator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"applyhome/internal/exporter"
	"applyhome/internal/models"
	"applyhome/internal/timezone"
	"applyhome/pkg/metadata"
)

var generatedAt = time.Date(2025, time.June, 20, 9, 0, 0, 0, timezone.Location)

func sampleListing(name string) models.Listing {
	l := models.Listing{
		Category:           "아파트",
		HouseName:          name,
		HouseSection:       "민영",
		HouseDetailSection: "일반",
		SupplyRegion:       "서울",
		SupplyAddress:      "서울특별시 강남구",
		TotalSupply:        "120",
		ExclusiveArea:      "84.97",
		MoveInMonth:        "202812",
		RecruitNoticeDate:  "2025-06-10",
		ReceptionStartDate: "2025-06-25",
		ReceptionEndDate:   "2025-06-27",
		WinnerAnnounceDate: "2025-07-03",
		ContractStartDate:  models.NotAvailable,
		ContractEndDate:    models.NotAvailable,
		Developer:          "Sample Dev",
		Constructor:        "Sample Build",
		ContactPhone:       "02-000-0000",
		HomepageURL:        models.NotAvailable,
		NoticeURL:          "https://www.applyhome.co.kr/notice/1",
		NoticeText:         "| not | a | table |\n공고 본문",
	}

	return l
}

func signedDocument(t *testing.T, listings ...models.Listing) string {
	t.Helper()

	res := models.RunResult{
		Listings: listings,
		Counts:   []models.CategoryCount{{Label: "아파트", Count: len(listings)}},
	}

	body := exporter.RenderMarkdown(res, exporter.MarkdownOptions{
		GeneratedAt:  generatedAt,
		Today:        "2025-06-20",
		ExcerptChars: 5000,
	})

	return metadata.Sign(body, metadata.New(generatedAt, len(listings)))
}

func TestValidateMarkdown_RenderedDocument(t *testing.T) {
	doc := signedDocument(t, sampleListing("Sample Tower"), sampleListing("Second Tower"))

	_, body := metadata.Extract(doc)
	result := NewMarkdownValidator().ValidateMarkdown(body)

	if !result.IsValid {
		t.Fatalf("Expected valid document, got errors: %v", result.Errors)
	}

	if result.Stats.Listings != 2 {
		t.Errorf("Expected 2 listings, got %d", result.Stats.Listings)
	}

	// Three tables per listing; the pipe line inside the notice fence is ignored.
	if result.Stats.Tables != 6 {
		t.Errorf("Expected 6 tables, got %d", result.Stats.Tables)
	}

	if result.Stats.InvalidRows != 0 || result.Stats.ValidRows != result.Stats.TotalRows {
		t.Errorf("Unexpected stats: %+v", result.Stats)
	}
}

func TestValidateMarkdown_InvalidClosingDate(t *testing.T) {
	md := "## 1. Sample\n\n| 항목 | 일정 |\n| --- | --- |\n| 접수시작일 | 2025-06-25 |\n| 접수종료일 | 2025/06/27 |\n"

	result := NewMarkdownValidator().ValidateMarkdown(md)

	if result.IsValid {
		t.Fatal("Expected invalid result for slash date")
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}

	err := result.Errors[0]
	if !errors.Is(err, ErrInvalidDateFormat) || err.Line != 6 || err.Field != "접수종료일" {
		t.Errorf("Unexpected error: %+v", err)
	}
}

func TestValidateMarkdown_OtherScheduleDatesWarn(t *testing.T) {
	md := "## 1. Sample\n\n| 항목 | 일정 |\n| --- | --- |\n| 계약시작일 | 20250701 |\n| 계약종료일 | N/A |\n| 접수종료일 | 2025-06-27 |\n"

	result := NewMarkdownValidator().ValidateMarkdown(md)

	if !result.IsValid {
		t.Fatalf("Expected valid result, got %v", result.Errors)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "계약시작일") {
		t.Errorf("Expected one 계약시작일 warning, got %v", result.Warnings)
	}
}

func TestValidateMarkdown_ColumnCount(t *testing.T) {
	md := "| 항목 | 내용 |\n| --- | --- |\n| 주택유형 | 아파트 | extra |\n| 공급지역 | 서울 \\| 경기 |\n"

	result := NewMarkdownValidator().ValidateMarkdown(md)

	if result.Stats.TotalRows != 2 || result.Stats.InvalidRows != 1 {
		t.Fatalf("Unexpected stats: %+v", result.Stats)
	}

	if !errors.Is(result.Errors[0], ErrColumnCount) {
		t.Errorf("Expected ErrColumnCount, got %v", result.Errors[0])
	}
}

func TestValidateMarkdown_NoListingsWarns(t *testing.T) {
	result := NewMarkdownValidator().ValidateMarkdown("# 🏠 전체 주택유형 청약정보 (0건)\n")

	if !result.IsValid {
		t.Error("Empty document should still be valid")
	}

	if len(result.Warnings) != 1 {
		t.Errorf("Expected a warning, got %v", result.Warnings)
	}
}

func TestValidateIntegrity_Valid(t *testing.T) {
	doc := signedDocument(t, sampleListing("Sample Tower"))

	result := NewMarkdownValidator().ValidateIntegrity(doc)

	if !result.IsValid {
		t.Fatalf("Expected valid document, got errors: %v", result.Errors)
	}

	if result.Metadata == nil || result.Metadata.Listings != 1 {
		t.Errorf("Unexpected metadata: %+v", result.Metadata)
	}
}

func TestValidateIntegrity_Tampered(t *testing.T) {
	doc := signedDocument(t, sampleListing("Sample Tower"))
	doc = strings.Replace(doc, "Sample Tower", "Other Tower", 1)

	result := NewMarkdownValidator().ValidateIntegrity(doc)

	if result.IsValid {
		t.Fatal("Expected tampered document to fail")
	}

	if !errors.Is(result.Errors[len(result.Errors)-1], metadata.ErrHashMismatch) {
		t.Errorf("Expected ErrHashMismatch, got %v", result.Errors)
	}
}

func TestValidateIntegrity_ListingCountMismatch(t *testing.T) {
	res := models.RunResult{Listings: []models.Listing{sampleListing("Sample Tower")}}
	body := exporter.RenderMarkdown(res, exporter.MarkdownOptions{GeneratedAt: generatedAt, ExcerptChars: 10})
	doc := metadata.Sign(body, metadata.New(generatedAt, 5))

	result := NewMarkdownValidator().ValidateIntegrity(doc)

	if result.IsValid {
		t.Fatal("Expected listing count mismatch")
	}

	if !errors.Is(result.Errors[0], ErrListingCount) {
		t.Errorf("Expected ErrListingCount, got %v", result.Errors[0])
	}
}

func TestValidateIntegrity_Unsigned(t *testing.T) {
	result := NewMarkdownValidator().ValidateIntegrity("## 1. Sample\n")

	if result.IsValid {
		t.Fatal("Expected unsigned document to fail")
	}

	if !errors.Is(result.Errors[0], metadata.ErrNoMetadataBlock) {
		t.Errorf("Expected ErrNoMetadataBlock, got %v", result.Errors[0])
	}
}

func TestValidationResult_String(t *testing.T) {
	result := &ValidationResult{
		IsValid: true,
		Stats:   ValidationStats{Listings: 3, TotalRows: 10, ValidRows: 10},
	}

	str := result.String()
	if !strings.Contains(str, "VALID") || !strings.Contains(str, "Listings: 3") {
		t.Errorf("Unexpected string: %s", str)
	}

	result.IsValid = false
	if !strings.Contains(result.String(), "INVALID") {
		t.Error("Expected 'INVALID' in string representation")
	}
}

func TestValidateMarkdown_BareHeading(t *testing.T) {
	result := NewMarkdownValidator().ValidateMarkdown("## 1.\n## 2. Named\n## 3.5 not a listing\n")

	if result.Stats.Listings != 2 {
		t.Errorf("Expected 2 listings, got %d", result.Stats.Listings)
	}
}

func TestValidateIntegrity_EmptyNameAndBacktickNotice(t *testing.T) {
	first := sampleListing("")
	first.NoticeText = "```\n| 접수종료일 | soon |"

	doc := signedDocument(t, first, sampleListing("Second Tower"))

	result := NewMarkdownValidator().ValidateIntegrity(doc)

	if !result.IsValid {
		t.Fatalf("Expected valid document, got errors: %v", result.Errors)
	}

	if result.Stats.Listings != 2 || result.Stats.Tables != 6 {
		t.Errorf("Unexpected stats: %+v", result.Stats)
	}
}
