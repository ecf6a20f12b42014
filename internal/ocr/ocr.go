// Package ocr extracts text from candidate files.
package ocr

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screening-cli/internal/config"
)

// Extractor extracts text content from PDF files.
type Extractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// Reader extracts text from any supported candidate file, dispatching PDFs to
// an Extractor and reading plain-text formats directly.
type Reader struct {
	pdf Extractor
}

// NewReader creates a Reader based on config.
func NewReader(cfg config.OCRConfig) *Reader {
	return &Reader{pdf: NewPdfToText(cfg.PdfToTextPath)}
}

// NewReaderWith creates a Reader with an explicit PDF extractor. Used in
// tests.
func NewReaderWith(pdf Extractor) *Reader {
	return &Reader{pdf: pdf}
}

// ReadText extracts the text content of a candidate file by extension.
func (r *Reader) ReadText(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := r.pdf.ExtractText(ctx, path)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", eris.Wrapf(err, "ocr: read %s", path)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return "", eris.Errorf("ocr: unsupported file type %s", path)
	}
}
