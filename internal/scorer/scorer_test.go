package scorer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/harrison/doccomp/internal/document"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestNew_UnknownAlgorithm(t *testing.T) {
	_, err := New("soundex", document.NormalizeOptions{})
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestNew_KnownAlgorithms(t *testing.T) {
	for _, alg := range DefaultAlgorithms() {
		s, err := New(alg, document.NormalizeOptions{})
		if err != nil {
			t.Fatalf("New(%s): %v", alg, err)
		}
		if s.Algorithm() != alg {
			t.Errorf("Algorithm() = %s, want %s", s.Algorithm(), alg)
		}
	}
}

func TestAllScorers_IdenticalInputs(t *testing.T) {
	texts := []string{"", "The cat sat.", "multi\nline\ntext"}
	for _, alg := range DefaultAlgorithms() {
		s, err := New(alg, document.NormalizeOptions{})
		if err != nil {
			t.Fatalf("New(%s): %v", alg, err)
		}
		for _, text := range texts {
			res, err := s.Score(context.Background(), text, text)
			if err != nil {
				t.Fatalf("%s.Score: %v", alg, err)
			}
			if res.Value != 1.0 {
				t.Errorf("%s(%q, same) = %v, want 1.0", alg, text, res.Value)
			}
		}
	}
}

func TestAllScorers_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"The cat sat.", "The dog sat."},
		{"hello", ""},
		{"abc def", "def abc"},
	}
	for _, alg := range DefaultAlgorithms() {
		s, err := New(alg, document.NormalizeOptions{})
		if err != nil {
			t.Fatalf("New(%s): %v", alg, err)
		}
		for _, p := range pairs {
			ab, err := s.Score(context.Background(), p[0], p[1])
			if err != nil {
				t.Fatalf("%s.Score: %v", alg, err)
			}
			ba, err := s.Score(context.Background(), p[1], p[0])
			if err != nil {
				t.Fatalf("%s.Score: %v", alg, err)
			}
			if !almostEqual(ab.Value, ba.Value) {
				t.Errorf("%s not symmetric on %q/%q: %v vs %v", alg, p[0], p[1], ab.Value, ba.Value)
			}
		}
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"warm.", "cold.", 4},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := LevenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshteinSimilarity_Formula(t *testing.T) {
	// One substituted word across two lines of text: the value must match
	// 1 - distance/max(len) exactly.
	left := "The cat sat.\nIt was warm."
	right := "The cat sat.\nIt was cold."
	d := LevenshteinDistance(left, right)
	if d != 4 {
		t.Fatalf("distance = %d, want 4", d)
	}
	want := 1.0 - float64(d)/float64(len([]rune(left)))
	if got := LevenshteinSimilarity(left, right); !almostEqual(got, want) {
		t.Errorf("similarity = %v, want %v", got, want)
	}
}

func TestLevenshteinSimilarity_Empty(t *testing.T) {
	if got := LevenshteinSimilarity("", ""); got != 1.0 {
		t.Errorf("both empty = %v, want 1.0", got)
	}
	if got := LevenshteinSimilarity("", "abc"); got != 0.0 {
		t.Errorf("one empty = %v, want 0.0", got)
	}
}

func TestLevenshteinScorer_Details(t *testing.T) {
	s, _ := New(AlgorithmLevenshtein, document.NormalizeOptions{})
	res, err := s.Score(context.Background(), "kitten", "sitting")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Details["distance"] != 3 {
		t.Errorf("details distance = %v, want 3", res.Details["distance"])
	}
	want := 1.0 - 3.0/7.0
	if !almostEqual(res.Value, want) {
		t.Errorf("value = %v, want %v", res.Value, want)
	}
}

func TestJaroWinkler_KnownValues(t *testing.T) {
	// MARTHA/MARHTA is the standard worked example: jaro = 0.944..,
	// jw = jaro + 3 * 0.1 * (1 - jaro).
	jw := JaroWinklerSimilarity("MARTHA", "MARHTA")
	jaro := JaroSimilarity("MARTHA", "MARHTA")
	wantJaro := (6.0/6.0 + 6.0/6.0 + (6.0-1.0)/6.0) / 3.0
	if !almostEqual(jaro, wantJaro) {
		t.Errorf("jaro = %v, want %v", jaro, wantJaro)
	}
	wantJW := wantJaro + 3.0*0.1*(1.0-wantJaro)
	if !almostEqual(jw, wantJW) {
		t.Errorf("jaro-winkler = %v, want %v", jw, wantJW)
	}
}

func TestJaroWinkler_Empty(t *testing.T) {
	if got := JaroWinklerSimilarity("", ""); got != 1.0 {
		t.Errorf("both empty = %v, want 1.0", got)
	}
	if got := JaroWinklerSimilarity("", "Hello"); got != 0.0 {
		t.Errorf("left empty = %v, want 0.0", got)
	}
	if got := JaroWinklerSimilarity("Hello", ""); got != 0.0 {
		t.Errorf("right empty = %v, want 0.0", got)
	}
}

func TestJaroWinkler_NoSharedCharacters(t *testing.T) {
	if got := JaroWinklerSimilarity("abc", "xyz"); got != 0.0 {
		t.Errorf("disjoint strings = %v, want 0.0", got)
	}
}

func TestJaroWinklerScorer_Details(t *testing.T) {
	s, _ := New(AlgorithmJaroWinkler, document.NormalizeOptions{})
	res, err := s.Score(context.Background(), "MARTHA", "MARHTA")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Details["matches"] != 6 {
		t.Errorf("matches = %v, want 6", res.Details["matches"])
	}
	if res.Details["transpositions"] != 1 {
		t.Errorf("transpositions = %v, want 1", res.Details["transpositions"])
	}
	if res.Details["prefix_length"] != 3 {
		t.Errorf("prefix_length = %v, want 3", res.Details["prefix_length"])
	}
}

func TestTokenOverlap_Cosine(t *testing.T) {
	s, _ := New(AlgorithmTokenOverlap, document.NormalizeOptions{})

	// "a b" vs "a c": vectors (1,1,0) and (1,0,1), cosine = 1/2.
	res, err := s.Score(context.Background(), "alpha beta", "alpha gamma")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !almostEqual(res.Value, 0.5) {
		t.Errorf("value = %v, want 0.5", res.Value)
	}
	if res.Details["overlap"] != 1 {
		t.Errorf("overlap = %v, want 1", res.Details["overlap"])
	}
}

func TestTokenOverlap_SetMeasures(t *testing.T) {
	s, _ := New(AlgorithmTokenOverlap, document.NormalizeOptions{})

	// Term sets {alpha,beta} and {alpha,gamma}: intersection 1, union 3.
	res, err := s.Score(context.Background(), "alpha beta", "alpha gamma")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !almostEqual(res.Details["jaccard"], 1.0/3.0) {
		t.Errorf("jaccard = %v, want 1/3", res.Details["jaccard"])
	}
	if !almostEqual(res.Details["overlap_coefficient"], 0.5) {
		t.Errorf("overlap_coefficient = %v, want 0.5", res.Details["overlap_coefficient"])
	}
	if !almostEqual(res.Details["sorensen_dice"], 0.5) {
		t.Errorf("sorensen_dice = %v, want 0.5", res.Details["sorensen_dice"])
	}
}

func TestTokenOverlap_SetMeasuresEmpty(t *testing.T) {
	s, _ := New(AlgorithmTokenOverlap, document.NormalizeOptions{})

	res, err := s.Score(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for _, key := range []string{"jaccard", "overlap_coefficient", "sorensen_dice"} {
		if res.Details[key] != 1.0 {
			t.Errorf("both empty %s = %v, want 1.0", key, res.Details[key])
		}
	}

	res, err = s.Score(context.Background(), "", "Hello")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for _, key := range []string{"jaccard", "overlap_coefficient", "sorensen_dice"} {
		if res.Details[key] != 0.0 {
			t.Errorf("one empty %s = %v, want 0.0", key, res.Details[key])
		}
	}
}

func TestTokenOverlap_Empty(t *testing.T) {
	s, _ := New(AlgorithmTokenOverlap, document.NormalizeOptions{})

	res, err := s.Score(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Value != 1.0 {
		t.Errorf("both empty = %v, want 1.0", res.Value)
	}

	res, err = s.Score(context.Background(), "", "Hello")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Value != 0.0 {
		t.Errorf("one empty = %v, want 0.0", res.Value)
	}
}

func TestTokenOverlap_CaseFolded(t *testing.T) {
	s, _ := New(AlgorithmTokenOverlap, document.NormalizeOptions{})
	res, err := s.Score(context.Background(), "The Cat", "the cat")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Value != 1.0 {
		t.Errorf("case-folded identical texts = %v, want 1.0", res.Value)
	}
}

func TestTokenOverlap_WordOrderIrrelevant(t *testing.T) {
	s, _ := New(AlgorithmTokenOverlap, document.NormalizeOptions{})
	res, err := s.Score(context.Background(), "green eggs and ham", "ham and eggs green")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !almostEqual(res.Value, 1.0) {
		t.Errorf("permuted text = %v, want 1.0", res.Value)
	}
}
