package extract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFReader pulls plain text out of PDF bytes. It backs the text-based
// extraction path when direct multimodal extraction finds nothing.
type PDFReader struct{}

func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// Text extracts and cleans the text content of a PDF.
func (p *PDFReader) Text(pdfData []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return Clean(buf.String()), nil
}
