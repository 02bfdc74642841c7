package entries

import (
	"strings"
	"time"
)

// StreakWindowDays bounds the backward walk when computing the journaling
// streak.
const StreakWindowDays = 30

// FilterQuery holds optional in-memory filter criteria. Zero-valued fields
// are pass-through; set fields compose with AND.
type FilterQuery struct {
	Search   string
	Since    *time.Time
	Category string
	Mood     string
	Tag      string
}

// Stats holds aggregate counters derived from the full entry collection.
type Stats struct {
	TotalEntries          int            `json:"total_entries"`
	Unsummarized          int            `json:"unsummarized"`
	PendingClarifications int            `json:"pending_clarifications"`
	Streak                int            `json:"streak"`
	AverageWords          float64        `json:"average_words"`
	MoodCounts            map[string]int `json:"mood_counts"`
}

// FilterEntries returns the entries matching every set criterion,
// preserving input order. Search matches case-insensitively against
// content and tags. Since keeps entries created at or after the cutoff.
// The input slice is never modified.
func FilterEntries(entries []Entry, q FilterQuery) []Entry {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if search != "" && !matchesSearch(&e, search) {
			continue
		}
		if q.Since != nil && e.CreatedAt.Before(*q.Since) {
			continue
		}
		if q.Category != "" && e.Category != q.Category {
			continue
		}
		if q.Mood != "" && (e.Mood == nil || *e.Mood != q.Mood) {
			continue
		}
		if q.Tag != "" && !hasTag(&e, q.Tag) {
			continue
		}
		matched = append(matched, e)
	}

	return matched
}

// CountUnsummarized returns the number of entries awaiting summarization.
func CountUnsummarized(entries []Entry) int {
	count := 0
	for _, e := range entries {
		if !e.Summarized {
			count++
		}
	}
	return count
}

// CountPendingClarifications returns the total unanswered clarifications
// across all entries.
func CountPendingClarifications(entries []Entry) int {
	count := 0
	for _, e := range entries {
		count += e.PendingClarifications()
	}
	return count
}

// Streak counts consecutive calendar days, walking backward from today,
// that have at least one entry. The walk stops at the first day without an
// entry, except that a missing today does not itself break the walk: an
// unwritten current day never zeroes an otherwise live streak.
func Streak(entries []Entry, today time.Time, windowDays int) int {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[dayKey(e.CreatedAt.In(today.Location()))] = true
	}

	streak := 0
	for offset := 0; offset < windowDays; offset++ {
		day := today.AddDate(0, 0, -offset)
		if days[dayKey(day)] {
			streak++
		} else if offset > 0 {
			break
		}
	}

	return streak
}

// AverageWords returns the mean whitespace-delimited token count of entry
// content, or 0 for an empty collection.
func AverageWords(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}

	total := 0
	for _, e := range entries {
		total += len(strings.Fields(e.Content))
	}

	return float64(total) / float64(len(entries))
}

// MoodCounts returns the number of entries per mood label. Entries with an
// unset mood are not counted.
func MoodCounts(entries []Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Mood != nil {
			counts[*e.Mood]++
		}
	}
	return counts
}

// ComputeStats derives all aggregate counters from the entry collection.
// It is synchronous, side-effect-free, and safe to call repeatedly on the
// same snapshot.
func ComputeStats(entries []Entry, today time.Time) *Stats {
	return &Stats{
		TotalEntries:          len(entries),
		Unsummarized:          CountUnsummarized(entries),
		PendingClarifications: CountPendingClarifications(entries),
		Streak:                Streak(entries, today, StreakWindowDays),
		AverageWords:          AverageWords(entries),
		MoodCounts:            MoodCounts(entries),
	}
}

func matchesSearch(e *Entry, search string) bool {
	if strings.Contains(strings.ToLower(e.Content), search) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func hasTag(e *Entry, tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
