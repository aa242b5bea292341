package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"applyhome/internal/models"
	"applyhome/internal/timezone"
	"applyhome/pkg/textutil"
)

const (
	// SheetAll holds every listing.
	SheetAll = "전체_청약정보"
	// SheetUpcoming holds listings whose reception has not started yet.
	SheetUpcoming = "향후_청약_가능"

	defaultColWidth = 18
	noticeColWidth  = 80
)

// Upcoming returns the listings whose ReceptionStartDate is a date on or after today.
func Upcoming(listings []models.Listing, today string) []models.Listing {
	var out []models.Listing

	for _, l := range listings {
		if isUpcoming(l, today) {
			out = append(out, l)
		}
	}

	return out
}

func isUpcoming(l models.Listing, today string) bool {
	return timezone.IsDate(l.ReceptionStartDate) && l.ReceptionStartDate >= today
}

func hasNoticeText(listings []models.Listing) bool {
	for _, l := range listings {
		if l.NoticeText != "" {
			return true
		}
	}

	return false
}

// WriteXLSX writes the full sheet and, when non-empty, the upcoming sheet.
func WriteXLSX(path string, listings []models.Listing, today string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetAll); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	withNotice := hasNoticeText(listings)

	if err := writeSheet(f, SheetAll, listings, withNotice); err != nil {
		return err
	}

	if upcoming := Upcoming(listings, today); len(upcoming) > 0 {
		if _, err := f.NewSheet(SheetUpcoming); err != nil {
			return fmt.Errorf("create sheet %s: %w", SheetUpcoming, err)
		}

		if err := writeSheet(f, SheetUpcoming, upcoming, withNotice); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}

func writeSheet(f *excelize.File, sheet string, listings []models.Listing, withNotice bool) error {
	headers := models.Labels()
	if withNotice {
		headers = append(headers, models.NoticeTextLabel)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}

	for i := range listings {
		l := &listings[i]

		fields := l.Fields()
		row := make([]any, 0, len(headers))

		for _, fld := range fields {
			row = append(row, fld.Value)
		}

		if withNotice {
			row = append(row, textutil.Truncate(l.NoticeText, excelize.TotalCellChars))
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}

	return styleSheet(f, sheet, len(headers), withNotice)
}

func styleSheet(f *excelize.File, sheet string, cols int, withNotice bool) error {
	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("%s freeze header: %w", sheet, err)
	}

	if err := f.SetColWidth(sheet, "A", lastCol, defaultColWidth); err != nil {
		return fmt.Errorf("%s column width: %w", sheet, err)
	}

	if withNotice {
		if err := f.SetColWidth(sheet, lastCol, lastCol, noticeColWidth); err != nil {
			return fmt.Errorf("%s notice column width: %w", sheet, err)
		}
	}

	return nil
}
