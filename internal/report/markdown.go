package report

import (
	"fmt"
	"strings"

	"github.com/harrison/doccomp/internal/compare"
	"github.com/harrison/doccomp/internal/diffengine"
	"github.com/harrison/doccomp/internal/extract"
)

// Markdown renders a comparison report: file information, a statistics
// table, per-algorithm similarity, and the diff in a fenced diff block.
func Markdown(res *compare.Result, meta Metadata) string {
	var b strings.Builder

	b.WriteString("# Document Comparison Report\n\n")
	if !meta.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	}

	b.WriteString("## Files Compared\n\n")
	fmt.Fprintf(&b, "- **Left:** %s (%s)\n", orDash(meta.LeftName), formatOrPlain(meta.LeftFormat))
	fmt.Fprintf(&b, "- **Right:** %s (%s)\n\n", orDash(meta.RightName), formatOrPlain(meta.RightFormat))

	b.WriteString("## Statistics\n\n")
	b.WriteString("| Metric | Left | Right |\n")
	b.WriteString("|--------|------|-------|\n")
	lt, rt := res.Statistics.LeftText, res.Statistics.RightText
	fmt.Fprintf(&b, "| Lines | %d | %d |\n", lt.Lines, rt.Lines)
	fmt.Fprintf(&b, "| Characters | %d | %d |\n", lt.Chars, rt.Chars)
	fmt.Fprintf(&b, "| Words | %d | %d |\n", lt.Words, rt.Words)
	fmt.Fprintf(&b, "| Unique words | %d | %d |\n\n", lt.UniqueWords, rt.UniqueWords)

	fmt.Fprintf(&b, "Added: %d, removed: %d, changed: %d, unchanged: %d\n\n",
		res.Statistics.Added, res.Statistics.Removed, res.Statistics.Changed, res.Statistics.Unchanged)

	b.WriteString("## Similarity\n\n")
	b.WriteString("| Algorithm | Score |\n")
	b.WriteString("|-----------|-------|\n")
	for _, s := range res.Scores {
		fmt.Fprintf(&b, "| %s | %.2f%% |\n", s.Algorithm, s.Value*100)
	}
	fmt.Fprintf(&b, "\n**Verdict: %s**\n\n", res.Verdict)

	b.WriteString("## Differences\n\n")
	b.WriteString("```diff\n")
	for _, ln := range res.Diff.RenderUnified(res.Left, res.Right) {
		switch {
		case ln.Omitted > 0:
			fmt.Fprintf(&b, "@@ %s @@\n", ln.Text)
		case ln.Kind == diffengine.OpDelete:
			fmt.Fprintf(&b, "- %s\n", ln.Text)
		case ln.Kind == diffengine.OpInsert:
			fmt.Fprintf(&b, "+ %s\n", ln.Text)
		default:
			fmt.Fprintf(&b, "  %s\n", ln.Text)
		}
	}
	b.WriteString("```\n")

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatOrPlain(f extract.Format) string {
	if f == "" {
		return string(extract.FormatPlain)
	}
	return string(f)
}
