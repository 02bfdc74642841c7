package entries

import (
	"errors"
	"net/http"

	"reverie/internal/summarizer"
	"reverie/pkg/crypto"
)

// Domain errors for entry operations.
var (
	ErrNotFound          = errors.New("entry not found")
	ErrDuplicate         = errors.New("entry already exists")
	ErrQuestionNotFound  = errors.New("clarification not found")
	ErrEmptyContent      = errors.New("entry content cannot be empty")
	ErrEmptyAnswer       = errors.New("answer cannot be empty")
	ErrAlreadyAnswered   = errors.New("clarification already answered")
	ErrAlreadySummarized = errors.New("entry already summarized")
	ErrInvalidRequest    = errors.New("invalid request")
)

// MapHTTPStatus maps entry domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyContent),
		errors.Is(err, ErrEmptyAnswer),
		errors.Is(err, ErrAlreadyAnswered),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadySummarized), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, summarizer.ErrSummarization):
		return http.StatusBadGateway
	case errors.Is(err, crypto.ErrDecrypt), errors.Is(err, crypto.ErrMalformed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
