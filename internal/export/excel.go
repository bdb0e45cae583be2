// Package export renders the link collection as a spreadsheet download.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename is the suggested download name.
const Filename = "imp-links.xlsx"

const (
	sheetOffice   = "Office"
	sheetPersonal = "Personal"

	createdAtLayout = "02 Jan 2006, 03:04 pm"
)

var headers = []string{"Title of card", "Link", "Category", "Tags", "Description", "Created At"}

var colWidths = []float64{40, 50, 20, 30, 40, 22}

// Workbook builds a two-sheet workbook (Office / Personal) from all
// links. Links without a known workspace land on the Personal sheet.
func Workbook(links []*domain.Link) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetOffice); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetPersonal); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	for _, sheet := range []string{sheetOffice, sheetPersonal} {
		if err := writeHeader(f, sheet); err != nil {
			return nil, err
		}
	}

	rowBySheet := map[string]int{sheetOffice: 1, sheetPersonal: 1}
	for _, link := range links {
		sheet := sheetPersonal
		if link.Workspace == domain.WorkspaceOffice {
			sheet = sheetOffice
		}

		rowBySheet[sheet]++
		cell, err := excelize.CoordinatesToCellName(1, rowBySheet[sheet])
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}

		row := []interface{}{
			link.Name,
			link.URL,
			link.Category,
			strings.Join(link.Tags, ", "),
			link.Description,
			formatCreatedAt(link.CreatedAt),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	return f, nil
}

func writeHeader(f *excelize.File, sheet string) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, width := range colWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to compute column name: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return nil
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(createdAtLayout)
}
