// Package extract models the intake boundary of the comparison engine: raw
// text payloads tagged with the format they originated from. Turning Word or
// PDF binaries into text with paragraph boundaries is an external
// collaborator's job; this package only accepts already-extracted text and
// rejects content that is still binary.
package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/doccomp/internal/document"
)

// Format tags the source a text payload was extracted from.
type Format string

const (
	FormatPlain Format = "plain"
	FormatWord  Format = "word"
	FormatPDF   Format = "pdf"
)

// Payload is one document's worth of extracted text, ready for tokenization.
type Payload struct {
	// Name identifies the source for reporting, usually a file path.
	Name string

	// Format is the original document format.
	Format Format

	// Text is the extracted plain text.
	Text string
}

// FormatForPath guesses the source format from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx", ".doc":
		return FormatWord
	case ".pdf":
		return FormatPDF
	default:
		return FormatPlain
	}
}

// ReadFile loads an already-extracted text file as a payload. Word and PDF
// sources must be converted to text upstream; handing their binary bytes to
// the engine is a caller error.
func ReadFile(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("read %s: %w", path, err)
	}

	format := FormatForPath(path)
	if format != FormatPlain {
		// Binary container handed over directly instead of extracted text.
		if looksBinary(data) {
			return Payload{}, fmt.Errorf("%w: %s is a %s binary; extract its text before comparing",
				document.ErrInvalidInput, path, format)
		}
	}
	if looksBinary(data) {
		return Payload{}, fmt.Errorf("%w: %s contains binary content", document.ErrInvalidInput, path)
	}

	return Payload{
		Name:   path,
		Format: format,
		Text:   string(data),
	}, nil
}

// looksBinary reports whether data cannot plausibly be extracted text.
func looksBinary(data []byte) bool {
	return bytes.ContainsRune(data, '\x00')
}
