package document

import "errors"

// ErrInvalidInput reports non-text content reaching the tokenizer, such as
// binary payloads that were not resolved during extraction.
var ErrInvalidInput = errors.New("invalid input")
