package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// PdfToText extracts resume text with the poppler pdftotext CLI.
type PdfToText struct {
	binPath string
}

// NewPdfToText creates a pdftotext-backed extractor. An empty binPath falls
// back to "pdftotext" on PATH.
func NewPdfToText(binPath string) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath}
}

// ExtractText converts one PDF to text. -layout preserves column structure,
// which matters for two-column resume templates; -nopgbrk drops the form-feed
// page markers that would otherwise land in the middle of the text.
func (p *PdfToText) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	cmd := exec.CommandContext(ctx, p.binPath, "-layout", "-nopgbrk", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: pdftotext %s: %s", pdfPath, stderr.String())
	}

	text := stdout.String()
	if strings.TrimSpace(text) == "" {
		// Image-only PDFs (scanned resumes) yield no text layer at all.
		return "", eris.Errorf("ocr: no extractable text in %s", pdfPath)
	}
	return text, nil
}
