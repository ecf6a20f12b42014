package ocr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	return f.text, f.err
}

func TestReadTextPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Jane Doe\nEngineer\n"), 0o644))

	r := NewReaderWith(fakeExtractor{})
	text, err := r.ReadText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEngineer", text)
}

func TestReadTextPDFDispatches(t *testing.T) {
	r := NewReaderWith(fakeExtractor{text: "extracted pdf text\n"})

	text, err := r.ReadText(context.Background(), "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "extracted pdf text", text)
}

func TestReadTextUnsupported(t *testing.T) {
	r := NewReaderWith(fakeExtractor{})

	_, err := r.ReadText(context.Background(), "resume.docx")
	assert.Error(t, err)
}

func TestNewPdfToTextDefaultsBinary(t *testing.T) {
	p := NewPdfToText("")
	assert.Equal(t, "pdftotext", p.binPath)
}
