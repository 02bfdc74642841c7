package summarizer

import "errors"

// Summarizer errors.
var (
	// ErrSummarization wraps any transport or service failure. The caller
	// may retry or save the entry as-is; the entry itself is never
	// modified on failure.
	ErrSummarization = errors.New("summarization failed")

	// ErrInvalidResponse indicates the model reply did not conform to the
	// summary/questions JSON contract. Treated as a service failure, not a
	// partial success.
	ErrInvalidResponse = errors.New("summarizer returned a non-conforming response")
)
