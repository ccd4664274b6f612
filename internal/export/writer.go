// Package export renders the document listing as a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"docanalyzer/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// ParseFormat maps a query value to a Format. Empty defaults to XLSX.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "", string(FormatXLSX):
		return FormatXLSX, true
	case string(FormatCSV):
		return FormatCSV, true
	default:
		return "", false
	}
}

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const sheetName = "Documents"

var columns = []string{
	"Document ID",
	"Filename",
	"Document Type",
	"Confidence",
}

// Write renders summaries to w in format f.
func Write(w io.Writer, f Format, summaries []domain.DocumentSummary) error {
	if f == FormatCSV {
		return WriteCSV(w, summaries)
	}
	return WriteXLSX(w, summaries)
}

// WriteXLSX writes a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, summaries []domain.DocumentSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet rather than adding a second one.
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, s := range summaries {
		row := i + 2
		values := []any{
			s.DocumentID,
			s.Filename,
			string(s.Classification.DocumentType),
			s.Classification.ConfidenceScore,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "B", "B", 40)
	_ = f.SetColWidth(sheetName, "C", "C", 16)
	_ = f.SetColWidth(sheetName, "D", "D", 12)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteCSV writes a BOM-prefixed CSV with a header row.
func WriteCSV(w io.Writer, summaries []domain.DocumentSummary) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, s := range summaries {
		if err := cw.Write([]string{
			strconv.FormatInt(s.DocumentID, 10),
			s.Filename,
			string(s.Classification.DocumentType),
			strconv.FormatFloat(s.Classification.ConfidenceScore, 'f', 2, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildFilename returns the Content-Disposition file name for an export
// taken at now. Format: documents_{YYYY-MM-DD}.{ext}
func BuildFilename(f Format, now time.Time) string {
	return fmt.Sprintf("documents_%s.%s", now.Format("2006-01-02"), f)
}
