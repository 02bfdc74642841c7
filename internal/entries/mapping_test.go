package entries_test

import (
	"net/url"
	"testing"
	"time"

	"reverie/internal/entries"
)

func TestFiltersFromQuery(t *testing.T) {
	t.Run("empty query yields zero filters", func(t *testing.T) {
		f := entries.FiltersFromQuery(url.Values{})

		if f.Category != nil || f.Mood != nil || f.Summarized != nil || f.Since != nil || f.Tag != nil {
			t.Errorf("expected zero filters, got %+v", f)
		}
	})

	t.Run("extracts all supported parameters", func(t *testing.T) {
		values := url.Values{}
		values.Set("category", "Medical")
		values.Set("mood", "Anxious")
		values.Set("summarized", "false")
		values.Set("since", "2026-08-01")
		values.Set("tag", "appointment")

		f := entries.FiltersFromQuery(values)

		if f.Category == nil || *f.Category != "Medical" {
			t.Errorf("category: %v", f.Category)
		}
		if f.Mood == nil || *f.Mood != "Anxious" {
			t.Errorf("mood: %v", f.Mood)
		}
		if f.Summarized == nil || *f.Summarized {
			t.Errorf("summarized: %v", f.Summarized)
		}
		if f.Since == nil || !f.Since.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("since: %v", f.Since)
		}
		if f.Tag == nil || *f.Tag != "appointment" {
			t.Errorf("tag: %v", f.Tag)
		}
	})

	t.Run("accepts rfc3339 since values", func(t *testing.T) {
		values := url.Values{}
		values.Set("since", "2026-08-01T15:04:05Z")

		f := entries.FiltersFromQuery(values)
		if f.Since == nil || f.Since.Hour() != 15 {
			t.Errorf("since: %v", f.Since)
		}
	})

	t.Run("ignores unparseable values", func(t *testing.T) {
		values := url.Values{}
		values.Set("summarized", "maybe")
		values.Set("since", "last tuesday")

		f := entries.FiltersFromQuery(values)
		if f.Summarized != nil {
			t.Errorf("summarized: %v", f.Summarized)
		}
		if f.Since != nil {
			t.Errorf("since: %v", f.Since)
		}
	})
}
