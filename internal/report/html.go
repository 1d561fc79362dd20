package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/doccomp/internal/compare"
)

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Document Comparison Report</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.8rem; text-align: left; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; border-radius: 4px; }
code { font-family: monospace; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTML renders the Markdown report to a standalone HTML page.
func HTML(res *compare.Result, meta Metadata) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(res, meta)), &body); err != nil {
		return nil, fmt.Errorf("convert report to html: %w", err)
	}
	return fmt.Appendf(nil, htmlShell, body.String()), nil
}
