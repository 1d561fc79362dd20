package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/doccomp/internal/compare"
	"github.com/harrison/doccomp/internal/diffengine"
)

// Text renders the diff and score summary as plain text.
func Text(res *compare.Result) string {
	var b strings.Builder
	writeText(&b, res, false)
	return b.String()
}

// WriteTerminal renders the diff and score summary to w, with ANSI colors
// when useColor is set.
func WriteTerminal(w io.Writer, res *compare.Result, useColor bool) {
	writeText(w, res, useColor)
}

func writeText(w io.Writer, res *compare.Result, useColor bool) {
	del := fmt.Sprintf
	ins := fmt.Sprintf
	dim := fmt.Sprintf
	if useColor {
		del = color.New(color.FgRed).Sprintf
		ins = color.New(color.FgGreen).Sprintf
		dim = color.New(color.FgHiBlack).Sprintf
	}

	switch res.Diff.Mode {
	case diffengine.ModeContext:
		for i, h := range res.Diff.RenderContext(res.Left, res.Right) {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, dim("%s", h.Header()))
			for _, ln := range h.Lines {
				writeLine(w, ln, del, ins, dim)
			}
		}
	default:
		for _, ln := range res.Diff.RenderUnified(res.Left, res.Right) {
			writeLine(w, ln, del, ins, dim)
		}
	}

	fmt.Fprintln(w)
	lt, rt := res.Statistics.LeftText, res.Statistics.RightText
	fmt.Fprintln(w, "Statistics:")
	fmt.Fprintf(w, "  Lines: %d left, %d right\n", res.Statistics.TotalLeft, res.Statistics.TotalRight)
	fmt.Fprintf(w, "  Chars: %d left, %d right\n", lt.Chars, rt.Chars)
	fmt.Fprintf(w, "  Words: %d left, %d right (unique: %d / %d)\n",
		lt.Words, rt.Words, lt.UniqueWords, rt.UniqueWords)
	fmt.Fprintf(w, "  Added: %d  Removed: %d  Changed: %d  Unchanged: %d\n",
		res.Statistics.Added, res.Statistics.Removed, res.Statistics.Changed, res.Statistics.Unchanged)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Similarity:")
	for _, s := range res.Scores {
		fmt.Fprintf(w, "  %-14s %6.2f%%\n", s.Algorithm, s.Value*100)
	}
	fmt.Fprintf(w, "Verdict: %s\n", res.Verdict)
}

func writeLine(w io.Writer, ln diffengine.RenderedLine, del, ins, dim func(string, ...any) string) {
	switch {
	case ln.Omitted > 0:
		fmt.Fprintln(w, dim("  ... %s ...", ln.Text))
	case ln.Kind == diffengine.OpDelete:
		fmt.Fprintln(w, del("- %s", ln.Text))
	case ln.Kind == diffengine.OpInsert:
		fmt.Fprintln(w, ins("+ %s", ln.Text))
	default:
		fmt.Fprintf(w, "  %s\n", ln.Text)
	}
}
