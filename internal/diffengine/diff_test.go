package diffengine

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/harrison/doccomp/internal/document"
)

func mustDoc(t *testing.T, text string) document.Document {
	t.Helper()
	doc, err := document.Tokenize(text, document.DefaultNormalizeOptions())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	return doc
}

// reconstruct concatenates the op spans on one side and compares against the
// document, verifying the round-trip law.
func reconstruct(t *testing.T, res *Result, left, right document.Document) {
	t.Helper()
	l, r := []string{}, []string{}
	for _, op := range res.Ops {
		for i := op.Left.Start; i < op.Left.End; i++ {
			l = append(l, left.Line(i).Raw)
		}
		for i := op.Right.Start; i < op.Right.End; i++ {
			r = append(r, right.Line(i).Raw)
		}
	}
	if !reflect.DeepEqual(l, left.RawLines()) {
		t.Errorf("left spans do not reconstruct left document:\ngot  %v\nwant %v", l, left.RawLines())
	}
	if !reflect.DeepEqual(r, right.RawLines()) {
		t.Errorf("right spans do not reconstruct right document:\ngot  %v\nwant %v", r, right.RawLines())
	}
}

func TestDiff_IdenticalDocuments(t *testing.T) {
	doc := mustDoc(t, "one\ntwo\nthree\n")
	res, err := Diff(doc, doc, Options{})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(res.Ops) != 1 {
		t.Fatalf("expected 1 op, got %d: %+v", len(res.Ops), res.Ops)
	}
	op := res.Ops[0]
	if op.Kind != OpEqual || op.Left.Len() != 3 || op.Right.Len() != 3 {
		t.Errorf("expected single Equal spanning everything, got %+v", op)
	}
	reconstruct(t, res, doc, doc)
}

func TestDiff_BothEmpty(t *testing.T) {
	empty := mustDoc(t, "")
	res, err := Diff(empty, empty, Options{})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(res.Ops) != 0 {
		t.Errorf("expected no ops, got %+v", res.Ops)
	}
}

func TestDiff_InsertIntoEmpty(t *testing.T) {
	left := mustDoc(t, "")
	right := mustDoc(t, "Hello\n")
	res, err := Diff(left, right, Options{})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(res.Ops) != 1 || res.Ops[0].Kind != OpInsert {
		t.Fatalf("expected single Insert, got %+v", res.Ops)
	}
	if res.Ops[0].Right.Len() != 1 {
		t.Errorf("insert should cover one line, got %+v", res.Ops[0])
	}
	reconstruct(t, res, left, right)
}

func TestDiff_DisjointDocuments(t *testing.T) {
	left := mustDoc(t, "aaaa\nbbbb\n")
	right := mustDoc(t, "cccc\ndddd\n")
	res, err := Diff(left, right, Options{})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	// No shared content: one Delete covering the whole left document, then
	// one Insert covering the whole right document. Never per-line Replace.
	if len(res.Ops) != 2 {
		t.Fatalf("expected 2 ops, got %+v", res.Ops)
	}
	if res.Ops[0].Kind != OpDelete || res.Ops[0].Left.Len() != 2 {
		t.Errorf("op 0 = %+v, want Delete of entire left", res.Ops[0])
	}
	if res.Ops[1].Kind != OpInsert || res.Ops[1].Right.Len() != 2 {
		t.Errorf("op 1 = %+v, want Insert of entire right", res.Ops[1])
	}
	reconstruct(t, res, left, right)
}

func TestDiff_ReplaceSimilarLine(t *testing.T) {
	left := mustDoc(t, "The cat sat.\nIt was warm.\n")
	right := mustDoc(t, "The cat sat.\nIt was cold.\n")
	res, err := Diff(left, right, Options{})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(res.Ops) != 2 {
		t.Fatalf("expected [Equal, Replace], got %+v", res.Ops)
	}
	if res.Ops[0].Kind != OpEqual {
		t.Errorf("op 0 = %+v, want Equal", res.Ops[0])
	}
	rep := res.Ops[1]
	if rep.Kind != OpReplace || rep.Left.Start != 1 || rep.Right.Start != 1 {
		t.Fatalf("op 1 = %+v, want Replace(line1, line1)", rep)
	}

	// The word-level sub-diff must mark "warm." -> "cold." as the only
	// changed token.
	var changed []WordOp
	for _, w := range rep.Words {
		if w.Kind != OpEqual {
			changed = append(changed, w)
		}
	}
	if len(changed) != 1 {
		t.Fatalf("expected exactly one changed word op, got %+v", rep.Words)
	}
	if changed[0].Kind != OpReplace ||
		!reflect.DeepEqual(changed[0].Left, []string{"warm."}) ||
		!reflect.DeepEqual(changed[0].Right, []string{"cold."}) {
		t.Errorf("changed word op = %+v", changed[0])
	}

	if len(rep.Chars) == 0 {
		t.Error("replace op should carry character spans")
	}
	reconstruct(t, res, left, right)
}

func TestDiff_DissimilarLinesNotPaired(t *testing.T) {
	left := mustDoc(t, "shared\ncompletely different text here\n")
	right := mustDoc(t, "shared\nzzzz qqqq xxxx\n")
	res, err := Diff(left, right, Options{})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	for _, op := range res.Ops {
		if op.Kind == OpReplace {
			t.Errorf("dissimilar lines were paired into Replace: %+v", op)
		}
	}
	reconstruct(t, res, left, right)
}

func TestDiff_ReplaceThresholdConfigurable(t *testing.T) {
	left := mustDoc(t, "abcdefgh\n")
	right := mustDoc(t, "abcdzzzz\n")
	// Half the characters differ: similarity is exactly 0.5.
	strict, err := Diff(left, right, Options{ReplaceThreshold: 0.9})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(strict.Ops) != 2 || strict.Ops[0].Kind != OpDelete || strict.Ops[1].Kind != OpInsert {
		t.Errorf("strict threshold should keep delete/insert, got %+v", strict.Ops)
	}

	loose, err := Diff(left, right, Options{ReplaceThreshold: 0.5})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(loose.Ops) != 1 || loose.Ops[0].Kind != OpReplace {
		t.Errorf("loose threshold should pair into Replace, got %+v", loose.Ops)
	}
}

func TestDiff_ContextNone(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 9; i++ {
		if i == 5 {
			b.WriteString("changed\n")
			continue
		}
		fmt.Fprintf(&b, "line%d\n", i)
	}
	left := mustDoc(t, "line1\nline2\nline3\nline4\nline5\nline6\nline7\nline8\nline9\n")
	right := mustDoc(t, b.String())

	res, err := Diff(left, right, Options{Context: ContextNone})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if res.Context != 0 {
		t.Fatalf("Context = %d, want 0", res.Context)
	}

	// With no context, every Equal run collapses into an omission marker.
	for _, ln := range res.RenderUnified(left, right) {
		if ln.Kind == OpEqual && ln.Omitted == 0 {
			t.Errorf("unexpected context line %q", ln.Text)
		}
	}
}

func TestDiff_ReplaceThresholdAny(t *testing.T) {
	left := mustDoc(t, "abc\n")
	right := mustDoc(t, "xyz\n")

	res, err := Diff(left, right, Options{ReplaceThreshold: ReplaceThresholdAny})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(res.Ops) != 1 || res.Ops[0].Kind != OpReplace {
		t.Fatalf("expected a single Replace with a zero threshold, got %+v", res.Ops)
	}
	reconstruct(t, res, left, right)
}

func TestDiff_NormalizedEquality(t *testing.T) {
	// Differ only in case and surrounding whitespace; with case folding and
	// trimming they are equal.
	opts := document.NormalizeOptions{TrimWhitespace: true, CaseInsensitive: true}
	left, err := document.Tokenize("  Hello World  \n", opts)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	right, err := document.Tokenize("hello world\n", opts)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	res, err := Diff(left, right, Options{Normalize: opts})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(res.Ops) != 1 || res.Ops[0].Kind != OpEqual {
		t.Errorf("expected single Equal op, got %+v", res.Ops)
	}
}

func TestDiff_UnknownMode(t *testing.T) {
	doc := mustDoc(t, "a\n")
	if _, err := Diff(doc, doc, Options{Mode: "sideways"}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestDiff_ReconstructionLaw(t *testing.T) {
	cases := []struct{ left, right string }{
		{"", ""},
		{"a\n", ""},
		{"", "a\n"},
		{"a\nb\nc\n", "a\nx\nc\n"},
		{"a\nb\nc\nd\ne\n", "a\nc\ne\nf\n"},
		{"x\ny\nz\n", "p\nq\n"},
		{"same\nsame\nsame\n", "same\nsame\n"},
	}
	for i, c := range cases {
		left := mustDoc(t, c.left)
		right := mustDoc(t, c.right)
		res, err := Diff(left, right, Options{})
		if err != nil {
			t.Fatalf("case %d: Diff: %v", i, err)
		}
		reconstruct(t, res, left, right)
	}
}

func TestMatchLines_Minimal(t *testing.T) {
	a := []string{"a", "b", "c", "d"}
	b := []string{"a", "c", "d", "e"}
	got := matchLines(a, b)
	want := []pair{{0, 0}, {2, 1}, {3, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("matchLines = %v, want %v", got, want)
	}
}

func TestMyersMatch_AgreesWithDP(t *testing.T) {
	cases := [][2][]string{
		{{"a", "b", "c"}, {"a", "b", "c"}},
		{{"a", "b", "c"}, {"x", "y"}},
		{{"a", "b", "c", "a", "b"}, {"b", "c", "a"}},
		{{"x"}, {"x", "x", "x"}},
	}
	for i, c := range cases {
		dp := lcsMatch(c[0], c[1])
		my := myersMatch(c[0], c[1])
		if len(dp) != len(my) {
			t.Errorf("case %d: LCS lengths differ: dp=%v myers=%v", i, dp, my)
		}
	}
}

func TestDiff_LargeDocumentUsesGreedyPath(t *testing.T) {
	// Above the DP cell limit the greedy search takes over; the result must
	// still satisfy the reconstruction law.
	// Changes near both ends defeat the prefix/suffix trim, leaving a
	// middle big enough to exceed dpCellLimit.
	var lb, rb strings.Builder
	for i := 0; i < 3000; i++ {
		fmt.Fprintf(&lb, "line %d\n", i)
		switch i {
		case 10, 2990:
			fmt.Fprintf(&rb, "changed beyond recognition %d\n", i*31)
		default:
			fmt.Fprintf(&rb, "line %d\n", i)
		}
	}
	left := mustDoc(t, lb.String())
	right := mustDoc(t, rb.String())
	res, err := Diff(left, right, Options{})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	reconstruct(t, res, left, right)
}
