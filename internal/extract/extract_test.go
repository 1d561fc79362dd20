package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/doccomp/internal/document"
)

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"report.txt":    FormatPlain,
		"report.md":     FormatPlain,
		"report":        FormatPlain,
		"contract.docx": FormatWord,
		"contract.DOC":  FormatWord,
		"scan.pdf":      FormatPDF,
		"Scan.PDF":      FormatPDF,
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatForPath(path), path)
	}
}

func TestReadFile_Plain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld\n"), 0644))

	p, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatPlain, p.Format)
	assert.Equal(t, path, p.Name)
	assert.Equal(t, "hello\nworld\n", p.Text)
}

func TestReadFile_ExtractedWordText(t *testing.T) {
	// A .docx path carrying plain text means extraction already happened
	// upstream; that is the supported flow.
	dir := t.TempDir()
	path := filepath.Join(dir, "contract.docx")
	require.NoError(t, os.WriteFile(path, []byte("Clause 1.\nClause 2.\n"), 0644))

	p, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatWord, p.Format)
}

func TestReadFile_RejectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\x00\x01\x02"), 0644))

	_, err := ReadFile(path)
	assert.ErrorIs(t, err, document.ErrInvalidInput)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
