// Package report serializes a ComparisonResult for consumers outside the
// engine: machine-readable JSON, Markdown, standalone HTML, and terminal
// text. Every serializer works from the ComparisonResult alone.
package report

import (
	"fmt"
	"time"

	"github.com/harrison/doccomp/internal/compare"
	"github.com/harrison/doccomp/internal/extract"
)

// Format identifies an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
)

// Metadata describes the compared sources for report headers.
type Metadata struct {
	LeftName    string
	RightName   string
	LeftFormat  extract.Format
	RightFormat extract.Format
	GeneratedAt time.Time
}

// Export renders res in the requested format.
func Export(format Format, res *compare.Result, meta Metadata) ([]byte, error) {
	switch format {
	case FormatJSON:
		return JSON(res)
	case FormatMarkdown:
		return []byte(Markdown(res, meta)), nil
	case FormatHTML:
		return HTML(res, meta)
	case FormatText:
		return []byte(Text(res)), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatMarkdown, FormatHTML, FormatText:
		return Format(name), nil
	}
	return "", fmt.Errorf("unsupported export format %q (json, markdown, html, text)", name)
}
