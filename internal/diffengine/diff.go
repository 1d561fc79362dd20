package diffengine

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/harrison/doccomp/internal/document"
	"github.com/harrison/doccomp/internal/scorer"
)

// DefaultReplaceThreshold is the minimum normalized Levenshtein similarity
// between a deleted and an inserted line for the pair to be reported as a
// single Replace with a word-level sub-diff, rather than a delete plus an
// insert. It directly affects diff readability, so it is configuration.
const DefaultReplaceThreshold = 0.5

// ReplaceThresholdAny requests a zero threshold, pairing every positionally
// aligned delete/insert line pair regardless of similarity. A zero threshold
// means unset and selects DefaultReplaceThreshold instead.
const ReplaceThresholdAny = -1

// Options control diff construction and rendering.
type Options struct {
	// Mode selects unified or context rendering. Default unified.
	Mode Mode

	// Context is the number of Equal lines kept around changes. Zero selects
	// DefaultContext; ContextNone requests none.
	Context int

	// ReplaceThreshold gates delete/insert pairing into Replace ops. Zero
	// selects DefaultReplaceThreshold; ReplaceThresholdAny pairs everything.
	ReplaceThreshold float64

	// Normalize is applied to word tokens inside the word-level sub-diff,
	// mirroring the line normalization the documents were built with.
	Normalize document.NormalizeOptions
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeUnified
	}
	if o.Context == 0 {
		o.Context = DefaultContext
	} else if o.Context < 0 {
		o.Context = 0
	}
	if o.ReplaceThreshold == 0 {
		o.ReplaceThreshold = DefaultReplaceThreshold
	} else if o.ReplaceThreshold < 0 {
		o.ReplaceThreshold = 0
	}
	return o
}

// Diff aligns the normalized line sequences of left and right and returns the
// resulting edit script. Identical documents produce a single Equal op;
// documents with no common line produce one Delete followed by one Insert.
func Diff(left, right document.Document, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if opts.Mode != ModeUnified && opts.Mode != ModeContext {
		return nil, fmt.Errorf("unknown diff mode %q", opts.Mode)
	}

	matches := matchLines(left.NormalizedLines(), right.NormalizedLines())

	b := opBuilder{
		left:      left,
		right:     right,
		threshold: opts.ReplaceThreshold,
		normalize: opts.Normalize,
	}

	l, r := 0, 0
	for _, m := range matches {
		b.change(l, m.l, r, m.r)
		b.equal(m.l, m.r)
		l, r = m.l+1, m.r+1
	}
	b.change(l, left.Len(), r, right.Len())

	res := &Result{
		Ops:     b.ops,
		Mode:    opts.Mode,
		Context: opts.Context,
	}
	if err := res.validate(left, right); err != nil {
		return nil, fmt.Errorf("edit script invariant violated: %w", err)
	}
	return res, nil
}

// opBuilder accumulates ops, coalescing Equal runs and grouping contiguous
// deletes and inserts, with similar delete/insert pairs promoted to Replace.
type opBuilder struct {
	left, right document.Document
	threshold   float64
	normalize   document.NormalizeOptions
	ops         []Op
}

// equal extends the current Equal run with the matched pair (l, r).
func (b *opBuilder) equal(l, r int) {
	if n := len(b.ops); n > 0 {
		last := &b.ops[n-1]
		if last.Kind == OpEqual && last.Left.End == l && last.Right.End == r {
			last.Left.End++
			last.Right.End++
			return
		}
	}
	b.ops = append(b.ops, Op{
		Kind:  OpEqual,
		Left:  Span{Start: l, End: l + 1},
		Right: Span{Start: r, End: r + 1},
	})
}

// change emits ops for the unmatched block left[l0:l1) / right[r0:r1).
// Deleted and inserted lines are paired positionally; a pair similar enough
// under the threshold becomes a Replace, everything else stays grouped in
// Delete-then-Insert runs.
func (b *opBuilder) change(l0, l1, r0, r1 int) {
	dels := l1 - l0
	ins := r1 - r0
	if dels == 0 && ins == 0 {
		return
	}

	// Pending run boundaries for unpaired lines.
	pl, pr := l0, r0
	flush := func(l, r int) {
		if l > pl {
			b.ops = append(b.ops, Op{
				Kind:  OpDelete,
				Left:  Span{Start: pl, End: l},
				Right: Span{Start: pr, End: pr},
			})
		}
		if r > pr {
			b.ops = append(b.ops, Op{
				Kind:  OpInsert,
				Left:  Span{Start: l, End: l},
				Right: Span{Start: pr, End: r},
			})
		}
		pl, pr = l, r
	}

	paired := dels
	if ins < paired {
		paired = ins
	}
	for i := 0; i < paired; i++ {
		li, ri := l0+i, r0+i
		oldLine := b.left.Line(li)
		newLine := b.right.Line(ri)
		if scorer.LevenshteinSimilarity(oldLine.Normalized, newLine.Normalized) < b.threshold {
			continue
		}
		flush(li, ri)
		b.ops = append(b.ops, Op{
			Kind:  OpReplace,
			Left:  Span{Start: li, End: li + 1},
			Right: Span{Start: ri, End: ri + 1},
			Words: wordDiff(oldLine.Raw, newLine.Raw, b.normalize),
			Chars: charSpans(oldLine.Raw, newLine.Raw),
		})
		pl, pr = li+1, ri+1
	}
	flush(l1, r1)
}

// wordDiff runs the same LCS alignment over whitespace-separated words of a
// replaced line pair. Tokens compare on their normalized form but the raw
// tokens are reported, so highlighting shows the original text.
func wordDiff(oldLine, newLine string, opts document.NormalizeOptions) []WordOp {
	oldWords := strings.Fields(oldLine)
	newWords := strings.Fields(newLine)

	oldKeys := make([]string, len(oldWords))
	for i, w := range oldWords {
		oldKeys[i] = document.Normalize(w, opts)
	}
	newKeys := make([]string, len(newWords))
	for i, w := range newWords {
		newKeys[i] = document.Normalize(w, opts)
	}

	matches := matchLines(oldKeys, newKeys)

	var ops []WordOp
	change := func(lo, lh, ro, rh int) {
		l := oldWords[lo:lh]
		r := newWords[ro:rh]
		switch {
		case len(l) > 0 && len(r) > 0:
			ops = append(ops, WordOp{Kind: OpReplace, Left: l, Right: r})
		case len(l) > 0:
			ops = append(ops, WordOp{Kind: OpDelete, Left: l})
		case len(r) > 0:
			ops = append(ops, WordOp{Kind: OpInsert, Right: r})
		}
	}

	l, r := 0, 0
	for _, m := range matches {
		change(l, m.l, r, m.r)
		n := len(ops)
		if n > 0 && ops[n-1].Kind == OpEqual {
			ops[n-1].Left = append(ops[n-1].Left, oldWords[m.l])
			ops[n-1].Right = append(ops[n-1].Right, newWords[m.r])
		} else {
			ops = append(ops, WordOp{
				Kind:  OpEqual,
				Left:  []string{oldWords[m.l]},
				Right: []string{newWords[m.r]},
			})
		}
		l, r = m.l+1, m.r+1
	}
	change(l, len(oldWords), r, len(newWords))
	return ops
}

// charSpans computes character-level segments for a replaced line pair with
// the semantic cleanup pass, which merges trivial commonalities into more
// readable spans.
func charSpans(oldLine, newLine string) []CharSpan {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var spans []CharSpan
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			spans = append(spans, CharSpan{Kind: OpEqual, Left: d.Text, Right: d.Text})
		case diffmatchpatch.DiffDelete:
			spans = append(spans, CharSpan{Kind: OpDelete, Left: d.Text})
		case diffmatchpatch.DiffInsert:
			spans = append(spans, CharSpan{Kind: OpInsert, Right: d.Text})
		}
	}
	return spans
}
