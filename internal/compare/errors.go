package compare

import (
	"errors"

	"github.com/harrison/doccomp/internal/document"
)

// ErrInvalidInput reports non-text content reaching the engine. It is the
// tokenizer's sentinel re-exported so callers only need this package for
// error classification.
var ErrInvalidInput = document.ErrInvalidInput

// ErrUnsupportedConfiguration reports a requested algorithm or diff mode the
// engine does not recognize.
var ErrUnsupportedConfiguration = errors.New("unsupported configuration")

// ErrResourceLimit reports input beyond the configured maximum line or
// character count. A failed comparison yields no result.
var ErrResourceLimit = errors.New("resource limit exceeded")
