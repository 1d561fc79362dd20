// Package compare is the comparison engine's public surface: it tokenizes two
// raw texts, computes the structural diff, fans the requested similarity
// scorers out concurrently, and aggregates everything into one immutable
// ComparisonResult.
//
// The engine is stateless and re-entrant. Each invocation operates on its own
// documents and results; independent comparisons may run in parallel without
// locking.
package compare

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/harrison/doccomp/internal/diffengine"
	"github.com/harrison/doccomp/internal/document"
	"github.com/harrison/doccomp/internal/scorer"
)

// Options configure a single comparison. The zero value selects the
// documented defaults.
type Options struct {
	// Normalize controls line normalization before equality comparison.
	Normalize document.NormalizeOptions

	// Mode selects unified or context diff rendering.
	Mode diffengine.Mode

	// Context is the number of Equal lines kept around changes. Zero selects
	// the default; diffengine.ContextNone requests no context lines.
	Context int

	// ReplaceThreshold gates pairing of deleted/inserted lines into Replace.
	// Zero selects the default; diffengine.ReplaceThresholdAny pairs every
	// positionally aligned delete/insert pair.
	ReplaceThreshold float64

	// Algorithms is the set of similarity scorers to run. Empty means all.
	Algorithms []scorer.Algorithm

	// MaxLines and MaxChars bound either input; 0 means unlimited. Exceeding
	// a bound fails the comparison with ErrResourceLimit.
	MaxLines int
	MaxChars int
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = diffengine.ModeUnified
	}
	// Context and ReplaceThreshold default inside diffengine, which also
	// resolves the explicit-zero sentinels.
	if len(o.Algorithms) == 0 {
		o.Algorithms = scorer.DefaultAlgorithms()
	}
	return o
}

// Statistics are line counts derived from the edit script, never recomputed
// independently, so they cannot disagree with the diff. LeftText and
// RightText describe each document on its own for reporting.
type Statistics struct {
	Added      int `json:"added"`
	Removed    int `json:"removed"`
	Changed    int `json:"changed"`
	Unchanged  int `json:"unchanged"`
	TotalLeft  int `json:"total_left"`
	TotalRight int `json:"total_right"`

	LeftText  TextStatistics `json:"left_text"`
	RightText TextStatistics `json:"right_text"`
}

// TextStatistics are size counts for a single document.
type TextStatistics struct {
	Chars       int `json:"chars"`
	Words       int `json:"words"`
	Lines       int `json:"lines"`
	UniqueWords int `json:"unique_words"`
}

// Result is the complete outcome of one comparison. It is created once per
// invocation and never mutated afterwards; it is the sole contract between
// the engine and every downstream consumer.
type Result struct {
	Left       document.Document  `json:"left"`
	Right      document.Document  `json:"right"`
	Diff       *diffengine.Result `json:"diff"`
	Scores     []scorer.Result    `json:"scores"`
	Statistics Statistics         `json:"statistics"`
	Verdict    string             `json:"verdict"`
}

// Compare runs the full pipeline over two raw texts.
func Compare(ctx context.Context, leftText, rightText string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	// Validate configuration up front so a bad request fails before any work.
	scorers := make([]scorer.Scorer, len(opts.Algorithms))
	for i, alg := range opts.Algorithms {
		s, err := scorer.New(alg, opts.Normalize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedConfiguration, err)
		}
		scorers[i] = s
	}
	if opts.Mode != diffengine.ModeUnified && opts.Mode != diffengine.ModeContext {
		return nil, fmt.Errorf("%w: unknown diff mode %q", ErrUnsupportedConfiguration, opts.Mode)
	}

	if err := checkLimits(leftText, rightText, opts); err != nil {
		return nil, err
	}

	left, err := document.Tokenize(leftText, opts.Normalize)
	if err != nil {
		return nil, fmt.Errorf("tokenize left document: %w", err)
	}
	right, err := document.Tokenize(rightText, opts.Normalize)
	if err != nil {
		return nil, fmt.Errorf("tokenize right document: %w", err)
	}
	if opts.MaxLines > 0 && (left.Len() > opts.MaxLines || right.Len() > opts.MaxLines) {
		return nil, fmt.Errorf("%w: document exceeds %d lines", ErrResourceLimit, opts.MaxLines)
	}

	diff, err := diffengine.Diff(left, right, diffengine.Options{
		Mode:             opts.Mode,
		Context:          opts.Context,
		ReplaceThreshold: opts.ReplaceThreshold,
		Normalize:        opts.Normalize,
	})
	if err != nil {
		return nil, fmt.Errorf("diff documents: %w", err)
	}

	scores, err := runScorers(ctx, scorers, left.NormalizedText(), right.NormalizedText())
	if err != nil {
		return nil, err
	}

	return Aggregate(diff, scores, left, right), nil
}

// Aggregate merges an edit script and a score set into a ComparisonResult.
// Pure function of its inputs.
func Aggregate(diff *diffengine.Result, scores []scorer.Result, left, right document.Document) *Result {
	stats := Statistics{
		TotalLeft:  left.Len(),
		TotalRight: right.Len(),
		LeftText:   textStatistics(left),
		RightText:  textStatistics(right),
	}
	for _, op := range diff.Ops {
		switch op.Kind {
		case diffengine.OpEqual:
			stats.Unchanged += op.Left.Len()
		case diffengine.OpInsert:
			stats.Added += op.Right.Len()
		case diffengine.OpDelete:
			stats.Removed += op.Left.Len()
		case diffengine.OpReplace:
			stats.Changed += op.Left.Len()
		}
	}

	return &Result{
		Left:       left,
		Right:      right,
		Diff:       diff,
		Scores:     scores,
		Statistics: stats,
		Verdict:    verdict(stats, scores),
	}
}

// textStatistics derives per-document counts from the raw line content.
// Chars counts runes including the newlines joining lines; word segmentation
// matches the token-overlap scorer, with unique words always case-folded.
func textStatistics(doc document.Document) TextStatistics {
	ts := TextStatistics{Lines: doc.Len()}
	unique := make(map[string]struct{})
	fold := document.NormalizeOptions{CaseInsensitive: true}
	for i := 0; i < doc.Len(); i++ {
		raw := doc.Line(i).Raw
		if i > 0 {
			ts.Chars++
		}
		ts.Chars += utf8.RuneCountInString(raw)
		for _, w := range document.Words(raw, fold) {
			ts.Words++
			unique[w] = struct{}{}
		}
	}
	ts.UniqueWords = len(unique)
	return ts
}

// runScorers evaluates all scorers concurrently. They share no state and
// consume the same two texts, so plain fan-out is safe.
func runScorers(ctx context.Context, scorers []scorer.Scorer, leftText, rightText string) ([]scorer.Result, error) {
	results := make([]scorer.Result, len(scorers))
	errs := make([]error, len(scorers))

	var wg sync.WaitGroup
	for i, s := range scorers {
		wg.Add(1)
		go func(i int, s scorer.Scorer) {
			defer wg.Done()
			results[i], errs[i] = s.Score(ctx, leftText, rightText)
		}(i, s)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", scorers[i].Algorithm(), err)
		}
	}
	return results, nil
}

func checkLimits(leftText, rightText string, opts Options) error {
	// The limit is a character count, so multi-byte runes count once.
	if opts.MaxChars > 0 &&
		(utf8.RuneCountInString(leftText) > opts.MaxChars || utf8.RuneCountInString(rightText) > opts.MaxChars) {
		return fmt.Errorf("%w: document exceeds %d characters", ErrResourceLimit, opts.MaxChars)
	}
	return nil
}

// verdict classifies the comparison outcome for reporting. Thresholds mirror
// the high/medium bands used in rendered reports.
func verdict(stats Statistics, scores []scorer.Result) string {
	if stats.Added == 0 && stats.Removed == 0 && stats.Changed == 0 {
		return "identical"
	}
	if len(scores) == 0 {
		return "different"
	}
	var sum float64
	for _, s := range scores {
		sum += s.Value
	}
	switch mean := sum / float64(len(scores)); {
	case mean >= 0.8:
		return "similar"
	case mean >= 0.5:
		return "somewhat similar"
	default:
		return "different"
	}
}
