// Package document turns raw document text into an ordered sequence of
// comparable lines. Equality for diffing is defined on the normalized form
// of each line; the raw form is preserved for display.
package document

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
)

// NormalizeOptions control how a line's normalized form is derived from its
// raw text. All options are independent; the zero value leaves lines as-is.
type NormalizeOptions struct {
	// TrimWhitespace removes leading and trailing whitespace.
	TrimWhitespace bool `yaml:"trim_whitespace"`

	// CaseInsensitive lowercases the line before comparison.
	CaseInsensitive bool `yaml:"case_insensitive"`

	// CollapseWhitespace replaces internal runs of whitespace with a single space.
	CollapseWhitespace bool `yaml:"collapse_whitespace"`
}

// DefaultNormalizeOptions returns the normalization applied when the caller
// does not configure one.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{
		TrimWhitespace:     true,
		CaseInsensitive:    false,
		CollapseWhitespace: false,
	}
}

// Line is a single line of a document.
type Line struct {
	// Index is the zero-based position of the line in its document.
	Index int `json:"index"`

	// Raw is the line text exactly as extracted, without the line terminator.
	Raw string `json:"raw"`

	// Normalized is the form used for equality during diffing.
	Normalized string `json:"normalized"`
}

// Document is an immutable ordered sequence of lines produced by Tokenize.
type Document struct {
	lines []Line
}

// Len returns the number of lines in the document.
func (d Document) Len() int {
	return len(d.lines)
}

// Line returns the line at index i.
func (d Document) Line(i int) Line {
	return d.lines[i]
}

// Lines returns a copy of the document's lines.
func (d Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// RawLines returns the raw text of every line in order.
func (d Document) RawLines() []string {
	out := make([]string, len(d.lines))
	for i, ln := range d.lines {
		out[i] = ln.Raw
	}
	return out
}

// NormalizedLines returns the normalized text of every line in order.
func (d Document) NormalizedLines() []string {
	out := make([]string, len(d.lines))
	for i, ln := range d.lines {
		out[i] = ln.Normalized
	}
	return out
}

// NormalizedText joins the normalized lines with "\n". This is the text the
// whole-document similarity scorers operate on.
func (d Document) NormalizedText() string {
	return strings.Join(d.NormalizedLines(), "\n")
}

// Tokenize splits text into lines and computes each line's normalized form.
// Every line boundary produces a Line, including empty lines, so line counts
// always match the input; diff alignment depends on that.
//
// Empty input produces a zero-length Document. Input that is not valid text
// (invalid UTF-8 or embedded NUL bytes, which indicate binary content leaking
// through extraction) is rejected.
func Tokenize(text string, opts NormalizeOptions) (Document, error) {
	if err := checkText(text); err != nil {
		return Document{}, err
	}
	if text == "" {
		return Document{}, nil
	}

	raw := splitLines(text)
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = Line{
			Index:      i,
			Raw:        r,
			Normalized: Normalize(r, opts),
		}
	}
	return Document{lines: lines}, nil
}

// Normalize applies opts to a single line of text.
func Normalize(s string, opts NormalizeOptions) string {
	if opts.TrimWhitespace {
		s = strings.TrimSpace(s)
	}
	if opts.CollapseWhitespace {
		s = strings.Join(strings.Fields(s), " ")
	}
	if opts.CaseInsensitive {
		s = strings.ToLower(s)
	}
	return s
}

// Words segments s into normalized word tokens using Unicode word boundaries.
// Whitespace and punctuation-only segments are dropped. Used by the
// token-overlap scorer and the per-text word counts.
func Words(s string, opts NormalizeOptions) []string {
	var out []string
	tokens := words.FromString(s)
	for tokens.Next() {
		w := tokens.Value()
		if !hasLetterOrDigit(w) {
			continue
		}
		if opts.CaseInsensitive {
			w = strings.ToLower(w)
		}
		out = append(out, w)
	}
	return out
}

// checkText rejects content that cannot be treated as text. Binary payloads
// reaching the tokenizer are a caller error; extraction should have resolved
// them already.
func checkText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: input is not valid UTF-8", ErrInvalidInput)
	}
	if strings.ContainsRune(s, '\x00') {
		return fmt.Errorf("%w: input contains NUL bytes", ErrInvalidInput)
	}
	return nil
}

// splitLines splits on \n, treating \r\n as a single boundary. A trailing
// newline does not produce a final empty line, matching how the line count
// of a text file is usually understood.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
