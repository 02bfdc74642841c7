package entries_test

import (
	"testing"
	"time"

	"reverie/internal/entries"
)

func entryAt(content string, created time.Time) entries.Entry {
	return entries.Entry{Content: content, CreatedAt: created}
}

func TestFilterEntries(t *testing.T) {
	cutoff := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	collection := []entries.Entry{
		{
			Content:   "Felt anxious about the presentation",
			Category:  "Business",
			Mood:      ptr("Anxious"),
			Tags:      []string{"work", "presentation"},
			CreatedAt: time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			Content:   "Quiet morning with coffee",
			Category:  "Daily Life",
			Mood:      ptr("Good"),
			Tags:      []string{"morning"},
			CreatedAt: time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			Content:   "Long call with mom",
			Category:  "Family",
			Mood:      ptr("Thoughtful"),
			Tags:      []string{"Anxiety", "family"},
			CreatedAt: time.Date(2026, 7, 20, 19, 0, 0, 0, time.UTC),
		},
	}

	tests := []struct {
		name  string
		query entries.FilterQuery
		want  []string
	}{
		{
			name:  "empty query passes everything through",
			query: entries.FilterQuery{},
			want:  []string{"Felt anxious about the presentation", "Quiet morning with coffee", "Long call with mom"},
		},
		{
			name:  "search matches content and tags case-insensitively",
			query: entries.FilterQuery{Search: "anxi"},
			want:  []string{"Felt anxious about the presentation", "Long call with mom"},
		},
		{
			name:  "since excludes entries before the cutoff",
			query: entries.FilterQuery{Since: &cutoff},
			want:  []string{"Felt anxious about the presentation", "Quiet morning with coffee"},
		},
		{
			name:  "category narrows the collection",
			query: entries.FilterQuery{Category: "Family"},
			want:  []string{"Long call with mom"},
		},
		{
			name:  "mood narrows the collection",
			query: entries.FilterQuery{Mood: "Good"},
			want:  []string{"Quiet morning with coffee"},
		},
		{
			name:  "tag matches case-insensitively",
			query: entries.FilterQuery{Tag: "WORK"},
			want:  []string{"Felt anxious about the presentation"},
		},
		{
			name:  "criteria compose with AND",
			query: entries.FilterQuery{Search: "anxi", Since: &cutoff},
			want:  []string{"Felt anxious about the presentation"},
		},
		{
			name:  "no matches yields empty result",
			query: entries.FilterQuery{Category: "Medical"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entries.FilterEntries(collection, tt.query)

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d", len(tt.want), len(got))
			}
			for i, e := range got {
				if e.Content != tt.want[i] {
					t.Errorf("position %d: expected %q, got %q", i, tt.want[i], e.Content)
				}
			}
		})
	}
}

func TestStreak(t *testing.T) {
	today := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return today.AddDate(0, 0, -offset)
	}

	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"no entries", nil, 0},
		{"single entry today", []int{0}, 1},
		{"consecutive run ends at first gap", []int{0, 1, 3}, 2},
		{"missing today does not break a live streak", []int{1, 2, 3}, 3},
		{"gap at yesterday zeroes the streak", []int{0, 2, 3}, 1},
		{"multiple entries per day count once", []int{0, 0, 1, 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var collection []entries.Entry
			for _, offset := range tt.offsets {
				collection = append(collection, entryAt("entry", day(offset)))
			}

			if got := entries.Streak(collection, today, entries.StreakWindowDays); got != tt.want {
				t.Errorf("expected streak %d, got %d", tt.want, got)
			}
		})
	}
}

func TestAverageWords(t *testing.T) {
	t.Run("empty collection yields zero", func(t *testing.T) {
		if got := entries.AverageWords(nil); got != 0 {
			t.Errorf("expected 0, got %f", got)
		}
	})

	t.Run("mean of whitespace-delimited tokens", func(t *testing.T) {
		collection := []entries.Entry{
			{Content: "one two three"},
			{Content: "four five"},
		}

		if got := entries.AverageWords(collection); got != 2.5 {
			t.Errorf("expected 2.5, got %f", got)
		}
	})
}

func TestComputeStats(t *testing.T) {
	today := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	summarized := entries.Entry{
		Content:   "a reflective day",
		Mood:      ptr("Thoughtful"),
		CreatedAt: today,
	}
	if err := summarized.ApplySummary("Reflection.", []string{"One?", "Two?", "Three?"}); err != nil {
		t.Fatalf("ApplySummary failed: %v", err)
	}
	if err := summarized.AnswerClarification(1, "answered"); err != nil {
		t.Fatalf("AnswerClarification failed: %v", err)
	}

	collection := []entries.Entry{
		summarized,
		{Content: "plain entry", Mood: ptr("Good"), CreatedAt: today.AddDate(0, 0, -1)},
		{Content: "another plain entry", CreatedAt: today.AddDate(0, 0, -5)},
	}

	stats := entries.ComputeStats(collection, today)

	if stats.TotalEntries != 3 {
		t.Errorf("expected 3 total, got %d", stats.TotalEntries)
	}
	if stats.Unsummarized != 2 {
		t.Errorf("expected 2 unsummarized, got %d", stats.Unsummarized)
	}
	if stats.PendingClarifications != 2 {
		t.Errorf("expected 2 pending clarifications, got %d", stats.PendingClarifications)
	}
	if stats.Streak != 2 {
		t.Errorf("expected streak 2, got %d", stats.Streak)
	}
	if stats.MoodCounts["Thoughtful"] != 1 || stats.MoodCounts["Good"] != 1 {
		t.Errorf("unexpected mood counts: %v", stats.MoodCounts)
	}
	if len(stats.MoodCounts) != 2 {
		t.Errorf("unset moods should not be counted: %v", stats.MoodCounts)
	}
}
