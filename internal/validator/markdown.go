// Package validator checks exported listing documents.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"applyhome/internal/formatter"
	"applyhome/internal/models"
	"applyhome/internal/timezone"
	"applyhome/pkg/metadata"
)

// Validation errors.
var (
	ErrColumnCount       = errors.New("unexpected column count")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrListingCount      = errors.New("listing count does not match metadata")
)

// closingDateRow is filtered on ingest, so anything but a date is an error.
const closingDateRow = "접수종료일"

// scheduleRows should hold dates or N/A; other values only warn.
var scheduleRows = map[string]bool{
	"모집공고일": true,
	"접수시작일": true,
	"당첨발표일": true,
	"계약시작일": true,
	"계약종료일": true,
}

// listingHeading matches "## 3. 주택명" and also a bare "## 3." left by an empty name.
var listingHeading = regexp.MustCompile(`^## \d+\.(\s|$)`)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Line    int
	Field   string
	Value   string
	Err     error
	Message string
}

// Error formats the message with its line number when known.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}

	return e.Message
}

// Unwrap returns the sentinel the error matches.
func (e ValidationError) Unwrap() error { return e.Err }

// ValidationStats contains validation statistics.
type ValidationStats struct {
	Listings    int
	Tables      int
	TotalRows   int
	ValidRows   int
	InvalidRows int
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	Metadata *metadata.Metadata
	IsValid  bool
}

// MarkdownValidator validates exported Markdown documents.
type MarkdownValidator struct{}

// NewMarkdownValidator creates a new validator.
func NewMarkdownValidator() *MarkdownValidator {
	return &MarkdownValidator{}
}

// ValidateMarkdown checks table shape and schedule dates. Tables inside fenced
// code blocks (notice excerpts) are skipped.
func (v *MarkdownValidator) ValidateMarkdown(markdown string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	var (
		fence   formatter.Fence
		columns int
		rowIdx  int
	)

	for lineNum, raw := range strings.Split(markdown, "\n") {
		if fence.Step(raw) {
			columns = 0

			continue
		}

		line := strings.TrimSpace(raw)

		if listingHeading.MatchString(line) {
			result.Stats.Listings++
		}

		if !strings.HasPrefix(line, "|") {
			columns = 0

			continue
		}

		cells := formatter.SplitRow(line)

		if columns == 0 {
			// Header row.
			columns = len(cells)
			rowIdx = 0
			result.Stats.Tables++

			continue
		}

		rowIdx++

		if rowIdx == 1 && formatter.IsSeparatorRow(cells) {
			continue
		}

		result.Stats.TotalRows++

		if w := scheduleWarning(cells, lineNum+1); w != "" {
			result.Warnings = append(result.Warnings, w)
		}

		if errs := v.validateRow(cells, columns, lineNum+1); len(errs) > 0 {
			result.IsValid = false
			result.Stats.InvalidRows++
			result.Errors = append(result.Errors, errs...)
		} else {
			result.Stats.ValidRows++
		}
	}

	if result.Stats.Listings == 0 {
		result.Warnings = append(result.Warnings, "no listings found in document")
	}

	return result
}

// validateRow checks a two-column 항목/value row.
func (v *MarkdownValidator) validateRow(cells []string, columns, lineNum int) []ValidationError {
	if len(cells) != columns {
		return []ValidationError{{
			Line:    lineNum,
			Err:     ErrColumnCount,
			Message: fmt.Sprintf("expected %d columns, got %d", columns, len(cells)),
		}}
	}

	if len(cells) < 2 {
		return nil
	}

	label, value := cells[0], cells[1]

	if label == closingDateRow && !timezone.IsDate(value) {
		return []ValidationError{{
			Line:    lineNum,
			Field:   label,
			Value:   value,
			Err:     ErrInvalidDateFormat,
			Message: fmt.Sprintf("%s '%s' is not YYYY-MM-DD", label, value),
		}}
	}

	return nil
}

func scheduleWarning(cells []string, lineNum int) string {
	if len(cells) < 2 || !scheduleRows[cells[0]] {
		return ""
	}

	if v := cells[1]; v != models.NotAvailable && !timezone.IsDate(v) {
		return fmt.Sprintf("line %d: %s '%s' is not YYYY-MM-DD", lineNum, cells[0], v)
	}

	return ""
}

// ValidateIntegrity checks the metadata hash and that the listing count recorded
// at export time matches the document body.
func (v *MarkdownValidator) ValidateIntegrity(content string) *ValidationResult {
	meta, err := metadata.Verify(content)

	_, body := metadata.Extract(content)
	result := v.ValidateMarkdown(body)
	result.Metadata = meta

	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, ValidationError{
			Err:     err,
			Message: fmt.Sprintf("integrity check failed: %v", err),
		})

		return result
	}

	if meta.Listings != result.Stats.Listings {
		result.IsValid = false
		result.Errors = append(result.Errors, ValidationError{
			Err: ErrListingCount,
			Message: fmt.Sprintf("%v: metadata says %d, document has %d",
				ErrListingCount, meta.Listings, result.Stats.Listings),
		})
	}

	return result
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf(
		"%s | Listings: %d | Tables: %d | Rows: %d | Invalid: %d | Warnings: %d",
		status,
		r.Stats.Listings,
		r.Stats.Tables,
		r.Stats.TotalRows,
		r.Stats.InvalidRows,
		len(r.Warnings),
	)
}
