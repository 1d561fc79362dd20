// Package scorer provides pluggable similarity algorithms. Each scorer is
// stateless and independently callable, producing a normalized score in
// [0, 1] plus auxiliary statistics, so callers may request any subset and
// evaluate them concurrently.
package scorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/harrison/doccomp/internal/document"
)

// Algorithm identifies a similarity algorithm.
type Algorithm string

const (
	// AlgorithmLevenshtein is character-granularity edit distance,
	// normalized by the longer input.
	AlgorithmLevenshtein Algorithm = "levenshtein"

	// AlgorithmJaroWinkler is Jaro similarity with the Winkler common-prefix
	// bonus.
	AlgorithmJaroWinkler Algorithm = "jaro_winkler"

	// AlgorithmTokenOverlap is cosine similarity over term-frequency vectors
	// of normalized word tokens.
	AlgorithmTokenOverlap Algorithm = "token_overlap"
)

// ErrUnknownAlgorithm reports a request for an algorithm that is not
// registered.
var ErrUnknownAlgorithm = errors.New("unknown similarity algorithm")

// Result is the outcome of one similarity computation. Details carries the
// raw distance or overlap counts alongside the normalized score, so
// downstream reporting can show both.
type Result struct {
	Algorithm Algorithm          `json:"algorithm"`
	Value     float64            `json:"value"`
	Details   map[string]float64 `json:"details"`
}

// Scorer computes a similarity score between two texts. Implementations hold
// no mutable state; the same instance may be used from multiple goroutines.
//
// The context is unused by the built-in scorers, which are pure in-memory
// computations, but is part of the contract so an implementation backed by an
// external model can honor cancellation.
type Scorer interface {
	Algorithm() Algorithm
	Score(ctx context.Context, left, right string) (Result, error)
}

// DefaultAlgorithms is the set run when the caller does not choose one.
func DefaultAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmLevenshtein, AlgorithmJaroWinkler, AlgorithmTokenOverlap}
}

// New returns the scorer for alg. The normalization options are used by
// token-based scorers to fold tokens the same way line comparison does.
func New(alg Algorithm, opts document.NormalizeOptions) (Scorer, error) {
	switch alg {
	case AlgorithmLevenshtein:
		return levenshteinScorer{}, nil
	case AlgorithmJaroWinkler:
		return jaroWinklerScorer{}, nil
	case AlgorithmTokenOverlap:
		return tokenOverlapScorer{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
