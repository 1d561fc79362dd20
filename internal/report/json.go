package report

import (
	"encoding/json"
	"fmt"

	"github.com/harrison/doccomp/internal/compare"
)

// JSON renders the full ComparisonResult as indented JSON. The output
// unmarshals back into a compare.Result, so it doubles as an interchange
// format for downstream tooling.
func JSON(res *compare.Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal comparison result: %w", err)
	}
	return data, nil
}
