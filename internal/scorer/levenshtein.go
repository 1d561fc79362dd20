package scorer

import "context"

// LevenshteinDistance returns the character-granularity edit distance between
// a and b, operating on runes. Two-row dynamic programming, O(len(a)*len(b))
// time and O(min) space.
func LevenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	// Keep the shorter string in the inner dimension.
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// LevenshteinSimilarity normalizes the edit distance to a similarity in
// [0, 1]: 1 - distance/max(len). Two empty strings are defined as identical.
func LevenshteinSimilarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	d := LevenshteinDistance(a, b)
	return clamp01(1.0 - float64(d)/float64(longest))
}

type levenshteinScorer struct{}

func (levenshteinScorer) Algorithm() Algorithm {
	return AlgorithmLevenshtein
}

func (levenshteinScorer) Score(_ context.Context, left, right string) (Result, error) {
	d := LevenshteinDistance(left, right)
	return Result{
		Algorithm: AlgorithmLevenshtein,
		Value:     LevenshteinSimilarity(left, right),
		Details: map[string]float64{
			"distance":    float64(d),
			"left_chars":  float64(len([]rune(left))),
			"right_chars": float64(len([]rune(right))),
		},
	}, nil
}
