package diffengine

import (
	"fmt"

	"github.com/harrison/doccomp/internal/document"
)

// RenderedLine is one line of diff output.
//
// Omitted > 0 marks a truncation marker standing in for that many Equal
// lines; such lines carry no line numbers. For lines originating from a
// Replace op, Words and Chars carry the sub-diff for highlighting.
type RenderedLine struct {
	Kind    OpKind `json:"kind"`
	LeftNo  int    `json:"left_no,omitempty"`  // 1-based, 0 when absent
	RightNo int    `json:"right_no,omitempty"` // 1-based, 0 when absent
	Text    string `json:"text"`
	Omitted int    `json:"omitted,omitempty"`

	Words []WordOp   `json:"words,omitempty"`
	Chars []CharSpan `json:"chars,omitempty"`
}

// Hunk is a contiguous block of context-mode output: changed lines plus up to
// the configured number of Equal lines on each side. Starts are 1-based.
type Hunk struct {
	LeftStart  int            `json:"left_start"`
	LeftCount  int            `json:"left_count"`
	RightStart int            `json:"right_start"`
	RightCount int            `json:"right_count"`
	Lines      []RenderedLine `json:"lines"`
}

// Header formats the hunk range in the conventional @@ form.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.LeftStart, h.LeftCount, h.RightStart, h.RightCount)
}

// RenderUnified renders the edit script as a flat line sequence. Equal runs
// longer than the context window are truncated to their boundary lines with
// an explicit omission marker in between.
func (r *Result) RenderUnified(left, right document.Document) []RenderedLine {
	flat := r.flatten(left, right)
	ctx := r.Context
	if ctx < 0 {
		ctx = DefaultContext
	}

	var out []RenderedLine
	i := 0
	for i < len(flat) {
		if flat[i].Kind != OpEqual {
			out = append(out, flat[i])
			i++
			continue
		}
		j := i
		for j < len(flat) && flat[j].Kind == OpEqual {
			j++
		}
		run := flat[i:j]

		// Boundary context is only worth keeping next to an actual change.
		head, tail := 0, 0
		if i > 0 {
			head = ctx
		}
		if j < len(flat) {
			tail = ctx
		}
		if len(run) <= head+tail {
			out = append(out, run...)
		} else {
			out = append(out, run[:head]...)
			out = append(out, RenderedLine{
				Kind:    OpEqual,
				Omitted: len(run) - head - tail,
				Text:    fmt.Sprintf("%d lines omitted", len(run)-head-tail),
			})
			out = append(out, run[len(run)-tail:]...)
		}
		i = j
	}
	return out
}

// RenderContext renders the edit script as hunks. Hunks whose context windows
// would overlap or touch are merged into one.
func (r *Result) RenderContext(left, right document.Document) []Hunk {
	flat := r.flatten(left, right)
	ctx := r.Context
	if ctx < 0 {
		ctx = DefaultContext
	}

	// Locate change blocks as index ranges into flat.
	type block struct{ start, end int }
	var blocks []block
	for i := 0; i < len(flat); {
		if flat[i].Kind == OpEqual {
			i++
			continue
		}
		j := i
		for j < len(flat) && flat[j].Kind != OpEqual {
			j++
		}
		blocks = append(blocks, block{i, j})
		i = j
	}
	if len(blocks) == 0 {
		return nil
	}

	// Merge blocks whose context would overlap: a gap of Equal lines no
	// larger than twice the window cannot separate two hunks.
	merged := []block{blocks[0]}
	for _, b := range blocks[1:] {
		last := &merged[len(merged)-1]
		if b.start-last.end <= 2*ctx {
			last.end = b.end
		} else {
			merged = append(merged, b)
		}
	}

	hunks := make([]Hunk, 0, len(merged))
	for _, b := range merged {
		start := b.start - ctx
		if start < 0 {
			start = 0
		}
		end := b.end + ctx
		if end > len(flat) {
			end = len(flat)
		}
		lines := flat[start:end]

		h := Hunk{Lines: lines}
		for _, ln := range lines {
			if ln.LeftNo > 0 {
				if h.LeftStart == 0 {
					h.LeftStart = ln.LeftNo
				}
				h.LeftCount++
			}
			if ln.RightNo > 0 {
				if h.RightStart == 0 {
					h.RightStart = ln.RightNo
				}
				h.RightCount++
			}
		}
		hunks = append(hunks, h)
	}
	return hunks
}

// flatten expands the op sequence into one RenderedLine per document line,
// with Replace ops contributing a delete line followed by an insert line.
func (r *Result) flatten(left, right document.Document) []RenderedLine {
	var out []RenderedLine
	for _, op := range r.Ops {
		switch op.Kind {
		case OpEqual:
			for i := 0; i < op.Left.Len(); i++ {
				out = append(out, RenderedLine{
					Kind:    OpEqual,
					LeftNo:  op.Left.Start + i + 1,
					RightNo: op.Right.Start + i + 1,
					Text:    left.Line(op.Left.Start + i).Raw,
				})
			}
		case OpDelete:
			for i := op.Left.Start; i < op.Left.End; i++ {
				out = append(out, RenderedLine{
					Kind:   OpDelete,
					LeftNo: i + 1,
					Text:   left.Line(i).Raw,
				})
			}
		case OpInsert:
			for i := op.Right.Start; i < op.Right.End; i++ {
				out = append(out, RenderedLine{
					Kind:    OpInsert,
					RightNo: i + 1,
					Text:    right.Line(i).Raw,
				})
			}
		case OpReplace:
			out = append(out, RenderedLine{
				Kind:   OpDelete,
				LeftNo: op.Left.Start + 1,
				Text:   left.Line(op.Left.Start).Raw,
				Words:  op.Words,
				Chars:  op.Chars,
			})
			out = append(out, RenderedLine{
				Kind:    OpInsert,
				RightNo: op.Right.Start + 1,
				Text:    right.Line(op.Right.Start).Raw,
				Words:   op.Words,
				Chars:   op.Chars,
			})
		}
	}
	return out
}
