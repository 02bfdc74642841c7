// Package summarizer implements the language-model adapter for journal
// entries. Given entry plaintext, it returns a short summary plus a set of
// clarifying questions conforming to a strict JSON contract; anything else
// is a service failure.
package summarizer

import "context"

// Result is the validated output of a summarization call.
type Result struct {
	Summary   string   `json:"summary"`
	Questions []string `json:"questions"`
}

// System defines the summarization contract consumed by the entry lifecycle.
// Implementations make at most one outbound call per invocation and never
// retry; a timeout is reported the same as an error response.
type System interface {
	Summarize(ctx context.Context, content string) (*Result, error)
}
