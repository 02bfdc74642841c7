// Package entries implements the journal entry domain for Reverie.
// It provides types, data access, and the lifecycle rules governing how an
// entry moves from creation to encrypted storage to optional AI
// summarization, and how its clarification questions are answered,
// dismissed, and archived.
package entries

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned when an entry is created without a category.
const DefaultCategory = "Uncategorized"

// Categories is the canonical category set offered to callers. The
// lifecycle does not reject values outside this set; validation against it
// is the caller's concern.
var Categories = []string{
	"Business",
	"Family",
	"Medical",
	"Creative",
	"Mental Health",
	"Daily Life",
}

// Moods is the canonical mood set. An absent mood means unset.
var Moods = []string{
	"Good",
	"Neutral",
	"Anxious",
	"Down",
	"Frustrated",
	"Thoughtful",
}

// Clarification is a follow-up question attached to an entry by
// summarization. IDs are 1-based and unique within the owning entry's
// single summarization event; they are not globally unique.
type Clarification struct {
	ID       int     `json:"id"`
	Question string  `json:"question"`
	Answered bool    `json:"answered"`
	Answer   *string `json:"answer"`
}

// Entry represents a single journal record. Content and Summary are
// encrypted at rest; above the repository boundary they are always
// plaintext.
type Entry struct {
	ID                 uuid.UUID       `json:"id"`
	Content            string          `json:"content"`
	Category           string          `json:"category"`
	Mood               *string         `json:"mood"`
	Tags               []string        `json:"tags"`
	Summarized         bool            `json:"summarized"`
	Summary            *string         `json:"summary"`
	Clarifications     []Clarification `json:"clarifications"`
	DismissedQuestions []Clarification `json:"dismissed_questions"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// CreateCommand carries the data needed to create a new entry.
// Content must be non-empty after trimming. An empty Category defaults to
// DefaultCategory; a nil Mood stays unset.
type CreateCommand struct {
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Mood     *string  `json:"mood"`
	Tags     []string `json:"tags"`
}

// ApplySummary performs the one-time summarized transition: it sets the
// summary and attaches the questions as pending clarifications with
// sequential 1-based ids in generation order. Re-summarizing is rejected,
// which keeps clarification ids collision-free for the entry's lifetime.
func (e *Entry) ApplySummary(summary string, questions []string) error {
	if e.Summarized {
		return ErrAlreadySummarized
	}

	clarifications := make([]Clarification, len(questions))
	for i, q := range questions {
		clarifications[i] = Clarification{
			ID:       i + 1,
			Question: q,
		}
	}

	e.Summarized = true
	e.Summary = &summary
	e.Clarifications = clarifications
	return nil
}

// AnswerClarification marks exactly one pending clarification as answered.
// The answer must be non-empty after trimming; re-answering an answered
// question is rejected. All other clarifications are left untouched.
func (e *Entry) AnswerClarification(questionID int, answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ErrEmptyAnswer
	}

	for i := range e.Clarifications {
		c := &e.Clarifications[i]
		if c.ID != questionID {
			continue
		}
		if c.Answered {
			return ErrAlreadyAnswered
		}
		c.Answered = true
		c.Answer = &answer
		return nil
	}

	return ErrQuestionNotFound
}

// DismissClarification removes the clarification with the given id from
// the active sequence and appends its at-removal snapshot to the dismissed
// history. Dismissal is terminal.
func (e *Entry) DismissClarification(questionID int) error {
	for i, c := range e.Clarifications {
		if c.ID != questionID {
			continue
		}
		e.Clarifications = append(e.Clarifications[:i], e.Clarifications[i+1:]...)
		e.DismissedQuestions = append(e.DismissedQuestions, c)
		return nil
	}

	return ErrQuestionNotFound
}

// PendingClarifications returns the count of unanswered clarifications.
func (e *Entry) PendingClarifications() int {
	count := 0
	for _, c := range e.Clarifications {
		if !c.Answered {
			count++
		}
	}
	return count
}
