package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF = "application/pdf"

	// noteMaxRunes bounds the snippet stored alongside a document so search
	// stays cheap.
	noteMaxRunes = 400
)

// ErrUnsupported is returned for attachment types without extractable text
// (images, for instance).
var ErrUnsupported = errors.New("unsupported attachment type")

// Note returns a short plain-text snippet for searchable attachments.
// Only PDFs carry extractable text; everything else yields ErrUnsupported.
func Note(data []byte, mimeType, fileName string) (string, error) {
	switch normalizeMimeType(mimeType, fileName) {
	case mimePDF:
		text, err := pdfText(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf text: %w", err)
		}
		return Snippet(text), nil
	default:
		return "", ErrUnsupported
	}
}

// Snippet collapses whitespace and truncates the text to the note budget.
func Snippet(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= noteMaxRunes {
		return collapsed
	}
	return strings.TrimSpace(string(runes[:noteMaxRunes]))
}

func pdfText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeMimeType(mimeType, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "application/octet-stream" || clean == "" {
		if strings.ToLower(filepath.Ext(fileName)) == ".pdf" {
			return mimePDF
		}
	}
	return clean
}
