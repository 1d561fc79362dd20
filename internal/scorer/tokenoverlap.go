package scorer

import (
	"context"
	"math"

	"github.com/harrison/doccomp/internal/document"
)

// tokenOverlapScorer measures similarity as the cosine of the two texts'
// term-frequency vectors over Unicode-segmented word tokens. It stands in
// for a heavier embedding-based measure behind the same Scorer contract.
type tokenOverlapScorer struct {
	opts document.NormalizeOptions
}

func (tokenOverlapScorer) Algorithm() Algorithm {
	return AlgorithmTokenOverlap
}

func (s tokenOverlapScorer) Score(_ context.Context, left, right string) (Result, error) {
	lt := termFrequencies(left, s.opts)
	rt := termFrequencies(right, s.opts)

	lc := tokenCount(lt)
	rc := tokenCount(rt)

	// Two empty token sets are identical; one empty set shares nothing.
	var value float64
	switch {
	case lc == 0 && rc == 0:
		value = 1.0
	case lc == 0 || rc == 0:
		value = 0.0
	default:
		value = cosine(lt, rt)
	}

	shared := 0
	inter := 0
	for term, n := range lt {
		if m, ok := rt[term]; ok {
			inter++
			if m < n {
				shared += m
			} else {
				shared += n
			}
		}
	}

	// Set measures over the distinct term sets, reported alongside the
	// cosine value. Two empty sets count as identical.
	jaccard, overlapCoef, dice := 1.0, 1.0, 1.0
	if union := len(lt) + len(rt) - inter; union > 0 {
		jaccard = float64(inter) / float64(union)
		dice = 2 * float64(inter) / float64(len(lt)+len(rt))
		if mn := min(len(lt), len(rt)); mn > 0 {
			overlapCoef = float64(inter) / float64(mn)
		} else {
			overlapCoef = 0.0
		}
	}

	return Result{
		Algorithm: AlgorithmTokenOverlap,
		Value:     clamp01(value),
		Details: map[string]float64{
			"overlap":             float64(shared),
			"left_tokens":         float64(lc),
			"right_tokens":        float64(rc),
			"unique_terms":        float64(len(lt) + len(rt)),
			"jaccard":             jaccard,
			"overlap_coefficient": overlapCoef,
			"sorensen_dice":       dice,
		},
	}, nil
}

// termFrequencies folds text into a term-frequency map of normalized words.
func termFrequencies(text string, opts document.NormalizeOptions) map[string]int {
	// Token comparison always case-folds; the semantic measure should not
	// treat "Cat" and "cat" as different terms regardless of how strict the
	// line-level comparison is.
	folded := opts
	folded.CaseInsensitive = true

	tf := make(map[string]int)
	for _, w := range document.Words(text, folded) {
		tf[w]++
	}
	return tf
}

func tokenCount(tf map[string]int) int {
	n := 0
	for _, c := range tf {
		n += c
	}
	return n
}

// cosine computes the cosine similarity of two term-frequency vectors.
func cosine(a, b map[string]int) float64 {
	var dot float64
	for term, n := range a {
		if m, ok := b[term]; ok {
			dot += float64(n) * float64(m)
		}
	}
	var na, nb float64
	for _, n := range a {
		na += float64(n) * float64(n)
	}
	for _, n := range b {
		nb += float64(n) * float64(n)
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
