// Package diffengine computes a line-level edit script between two documents
// using an LCS alignment, pairs similar delete/insert lines into replacements
// with word-level sub-diffs, and renders the script in unified or context mode.
package diffengine

import (
	"fmt"

	"github.com/harrison/doccomp/internal/document"
)

// OpKind identifies the kind of an edit operation.
type OpKind string

const (
	OpEqual   OpKind = "equal"
	OpInsert  OpKind = "insert"
	OpDelete  OpKind = "delete"
	OpReplace OpKind = "replace"
)

// Mode selects how a diff is rendered.
type Mode string

const (
	ModeUnified Mode = "unified"
	ModeContext Mode = "context"
)

// DefaultContext is the context window used when the caller does not set one.
const DefaultContext = 3

// ContextNone requests rendering with no context lines around changes. A
// zero Context means unset and selects DefaultContext instead.
const ContextNone = -1

// Span is a half-open index range [Start, End) into a document.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of lines covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// WordOp is one step of the word-level sub-diff inside a replaced line pair.
// Left holds tokens from the old line, Right from the new line; for Equal
// steps both sides carry the same tokens.
type WordOp struct {
	Kind  OpKind   `json:"kind"`
	Left  []string `json:"left,omitempty"`
	Right []string `json:"right,omitempty"`
}

// CharSpan is a character-level segment of a replaced line pair, used for
// fine-grained highlighting inside changed words.
type CharSpan struct {
	Kind  OpKind `json:"kind"`
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
}

// Op is a single edit operation. Equal, Delete and Insert ops may cover runs
// of lines; a Replace op always covers exactly one line on each side and
// carries the word-level sub-diff for that pair.
type Op struct {
	Kind  OpKind `json:"kind"`
	Left  Span   `json:"left"`
	Right Span   `json:"right"`

	// Words and Chars are populated only on Replace ops.
	Words []WordOp   `json:"words,omitempty"`
	Chars []CharSpan `json:"chars,omitempty"`
}

// Result is an edit script plus the rendering parameters it was requested with.
// Concatenating the left spans of all ops in order reconstructs the left
// document exactly once; likewise for the right side.
type Result struct {
	Ops     []Op `json:"ops"`
	Mode    Mode `json:"mode"`
	Context int  `json:"context"`
}

// validate checks the reconstruction invariant: the op sequence must cover
// both documents completely and in order, with no gaps or overlaps.
func (r *Result) validate(left, right document.Document) error {
	l, rt := 0, 0
	for i, op := range r.Ops {
		if op.Left.Start != l {
			return fmt.Errorf("op %d: left span starts at %d, expected %d", i, op.Left.Start, l)
		}
		if op.Right.Start != rt {
			return fmt.Errorf("op %d: right span starts at %d, expected %d", i, op.Right.Start, rt)
		}
		switch op.Kind {
		case OpEqual:
			if op.Left.Len() != op.Right.Len() || op.Left.Len() == 0 {
				return fmt.Errorf("op %d: equal spans %d/%d lines", i, op.Left.Len(), op.Right.Len())
			}
		case OpInsert:
			if op.Left.Len() != 0 || op.Right.Len() == 0 {
				return fmt.Errorf("op %d: insert spans %d/%d lines", i, op.Left.Len(), op.Right.Len())
			}
		case OpDelete:
			if op.Left.Len() == 0 || op.Right.Len() != 0 {
				return fmt.Errorf("op %d: delete spans %d/%d lines", i, op.Left.Len(), op.Right.Len())
			}
		case OpReplace:
			if op.Left.Len() != 1 || op.Right.Len() != 1 {
				return fmt.Errorf("op %d: replace spans %d/%d lines", i, op.Left.Len(), op.Right.Len())
			}
		default:
			return fmt.Errorf("op %d: unknown kind %q", i, op.Kind)
		}
		l = op.Left.End
		rt = op.Right.End
	}
	if l != left.Len() {
		return fmt.Errorf("left document covered to %d of %d lines", l, left.Len())
	}
	if rt != right.Len() {
		return fmt.Errorf("right document covered to %d of %d lines", rt, right.Len())
	}
	return nil
}
