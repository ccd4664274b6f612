// Package pdf extracts plain text from PDF files.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor implements port.TextExtractor using github.com/ledongthuc/pdf.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an Extractor. logger may be nil.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// ExtractText returns the concatenated text of every page of the PDF at path.
// A document without a text layer yields "" and no error. Unreadable or
// corrupt files return an error; panics raised by the PDF library on
// malformed input are converted into errors.
func (e *Extractor) ExtractText(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("pdfExtractor.ExtractText: recovered from parser panic",
				zap.String("path", path),
				zap.Any("panic", r),
			)
			text, err = "", fmt.Errorf("parsing pdf %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if f != nil {
		defer f.Close()
	}
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}

	var sb strings.Builder
	pageCount := reader.NumPage()
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		sb.WriteString(pageText)
	}

	e.logger.Debug("pdfExtractor.ExtractText: extracted text",
		zap.String("path", path),
		zap.Int("pages", pageCount),
		zap.Int("chars", sb.Len()),
	)
	return sb.String(), nil
}
