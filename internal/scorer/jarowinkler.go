package scorer

import "context"

const (
	// winklerPrefixScale is the bonus per matching leading character.
	winklerPrefixScale = 0.1

	// winklerMaxPrefix caps the counted common prefix.
	winklerMaxPrefix = 4
)

// JaroSimilarity computes the Jaro similarity of a and b: matching characters
// within a bounded window, penalized by transpositions. Defined as 1.0 for
// two empty strings and 0.0 when exactly one is empty.
func JaroSimilarity(a, b string) float64 {
	j, _, _ := jaro([]rune(a), []rune(b))
	return j
}

// JaroWinklerSimilarity boosts the Jaro similarity by up to
// winklerMaxPrefix * winklerPrefixScale, scaled by (1 - jaro), for a shared
// prefix. This is the canonical Jaro-Winkler formula.
func JaroWinklerSimilarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	j, _, _ := jaro(ra, rb)

	prefix := 0
	for prefix < len(ra) && prefix < len(rb) && prefix < winklerMaxPrefix && ra[prefix] == rb[prefix] {
		prefix++
	}
	return clamp01(j + float64(prefix)*winklerPrefixScale*(1.0-j))
}

// jaro returns the Jaro similarity plus the match and transposition counts.
func jaro(a, b []rune) (sim float64, matches int, transpositions int) {
	if len(a) == 0 && len(b) == 0 {
		return 1.0, 0, 0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0, 0, 0
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	window := longest/2 - 1
	if window < 0 {
		window = 0
	}

	aMatched := make([]bool, len(a))
	bMatched := make([]bool, len(b))
	for i := range a {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > len(b) {
			hi = len(b)
		}
		for j := lo; j < hi; j++ {
			if bMatched[j] || a[i] != b[j] {
				continue
			}
			aMatched[i] = true
			bMatched[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0.0, 0, 0
	}

	// Count transpositions between the matched sequences.
	k := 0
	half := 0
	for i := range a {
		if !aMatched[i] {
			continue
		}
		for !bMatched[k] {
			k++
		}
		if a[i] != b[k] {
			half++
		}
		k++
	}
	transpositions = half / 2

	m := float64(matches)
	sim = (m/float64(len(a)) + m/float64(len(b)) + (m-float64(transpositions))/m) / 3.0
	return sim, matches, transpositions
}

type jaroWinklerScorer struct{}

func (jaroWinklerScorer) Algorithm() Algorithm {
	return AlgorithmJaroWinkler
}

func (jaroWinklerScorer) Score(_ context.Context, left, right string) (Result, error) {
	ra := []rune(left)
	rb := []rune(right)
	j, matches, transpositions := jaro(ra, rb)

	prefix := 0
	for prefix < len(ra) && prefix < len(rb) && prefix < winklerMaxPrefix && ra[prefix] == rb[prefix] {
		prefix++
	}

	return Result{
		Algorithm: AlgorithmJaroWinkler,
		Value:     clamp01(j + float64(prefix)*winklerPrefixScale*(1.0-j)),
		Details: map[string]float64{
			"jaro":           j,
			"matches":        float64(matches),
			"transpositions": float64(transpositions),
			"prefix_length":  float64(prefix),
		},
	}, nil
}
