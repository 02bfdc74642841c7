package entries

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"reverie/pkg/query"
	"reverie/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "entries", "e").
	Project("id", "ID").
	Project("content", "Content").
	Project("category", "Category").
	Project("mood", "Mood").
	Project("tags", "Tags").
	Project("summarized", "Summarized").
	Project("summary", "Summary").
	Project("clarifications", "Clarifications").
	Project("dismissed_questions", "DismissedQuestions").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for entry queries.
// Nil fields are ignored. Category and Mood use exact matching and
// Since keeps entries created at or after the cutoff; these apply in SQL.
// Search (from the page request) and Tag match against decrypted content
// and tags, so they apply in memory after the storage read.
type Filters struct {
	Category   *string    `json:"category,omitempty"`
	Mood       *string    `json:"mood,omitempty"`
	Summarized *bool      `json:"summarized,omitempty"`
	Since      *time.Time `json:"since,omitempty"`
	Tag        *string    `json:"tag,omitempty"`
}

// Apply adds the SQL-resolvable filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("Mood", f.Mood).
		WhereEquals("Summarized", f.Summarized).
		WhereGte("CreatedAt", f.Since)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// The since parameter accepts RFC 3339 or a bare 2006-01-02 date.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if m := values.Get("mood"); m != "" {
		f.Mood = &m
	}

	if s := values.Get("summarized"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			f.Summarized = &v
		}
	}

	if s := values.Get("since"); s != "" {
		if t, err := parseCutoff(s); err == nil {
			f.Since = &t
		}
	}

	if tag := values.Get("tag"); tag != "" {
		f.Tag = &tag
	}

	return f
}

func parseCutoff(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	var tags, clarifications, dismissed []byte

	err := s.Scan(
		&e.ID,
		&e.Content,
		&e.Category,
		&e.Mood,
		&tags,
		&e.Summarized,
		&e.Summary,
		&clarifications,
		&dismissed,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}

	if err := json.Unmarshal(tags, &e.Tags); err != nil {
		return e, err
	}
	if err := json.Unmarshal(clarifications, &e.Clarifications); err != nil {
		return e, err
	}
	if err := json.Unmarshal(dismissed, &e.DismissedQuestions); err != nil {
		return e, err
	}

	return e, nil
}

func marshalClarifications(clarifications []Clarification) ([]byte, error) {
	if clarifications == nil {
		clarifications = []Clarification{}
	}
	return json.Marshal(clarifications)
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}
