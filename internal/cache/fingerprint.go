package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/harrison/doccomp/internal/compare"
)

// Fingerprint derives a stable content key for a comparison request: the two
// raw texts plus every option that can change the result. Identical requests
// produce identical fingerprints; changing any input or option changes it.
func Fingerprint(leftText, rightText string, opts compare.Options) string {
	algorithms := make([]string, len(opts.Algorithms))
	for i, a := range opts.Algorithms {
		algorithms[i] = string(a)
	}
	sort.Strings(algorithms)

	var b strings.Builder
	b.WriteString(leftText)
	b.WriteString("\n---right---\n")
	b.WriteString(rightText)
	b.WriteString("\n---options---\n")
	fmt.Fprintf(&b, "trim=%t case=%t collapse=%t mode=%s context=%d threshold=%g algorithms=%s",
		opts.Normalize.TrimWhitespace,
		opts.Normalize.CaseInsensitive,
		opts.Normalize.CollapseWhitespace,
		opts.Mode,
		opts.Context,
		opts.ReplaceThreshold,
		strings.Join(algorithms, ","))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
