package mood

import (
	"testing"
	"time"

	moodmodel "github.com/feelbetterai/backend/internal/model/mood"
)

func TestDailySummaryEmptyDay(t *testing.T) {
	date := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	summary := DailySummary(date, nil, nil)

	if summary.Date != "2025-06-15" {
		t.Fatalf("unexpected date: %q", summary.Date)
	}
	if summary.AverageScore != 5 || summary.HighestMood != 5 || summary.LowestMood != 5 {
		t.Fatalf("expected neutral defaults, got %+v", summary)
	}
	if summary.SessionCount != 0 || summary.MessageCount != 0 {
		t.Fatalf("expected zero counts, got %+v", summary)
	}
}

func TestDailySummaryAggregates(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	entries := []moodmodel.Entry{
		{Score: 4, RecordedAt: date.Add(9 * time.Hour)},
		{Score: 8, RecordedAt: date.Add(14 * time.Hour)},
		{Score: 6, RecordedAt: date.Add(21 * time.Hour)},
		// Previous day, must be excluded.
		{Score: 1, RecordedAt: date.Add(-time.Hour)},
	}
	sessions := []moodmodel.SessionStats{
		{MessageCount: 10, StartTime: date.Add(9 * time.Hour)},
		{MessageCount: 4, StartTime: date.Add(20 * time.Hour)},
		// Next day, must be excluded.
		{MessageCount: 99, StartTime: date.Add(25 * time.Hour)},
	}

	summary := DailySummary(date, entries, sessions)

	if summary.AverageScore != 6 {
		t.Fatalf("expected average 6, got %f", summary.AverageScore)
	}
	if summary.HighestMood != 8 || summary.LowestMood != 4 {
		t.Fatalf("unexpected extremes: %+v", summary)
	}
	if summary.SessionCount != 2 {
		t.Fatalf("expected 2 sessions, got %d", summary.SessionCount)
	}
	if summary.MessageCount != 14 {
		t.Fatalf("expected 14 messages, got %d", summary.MessageCount)
	}
}

func TestDailySummaryWindowIsInclusive(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	entries := []moodmodel.Entry{
		{Score: 9, RecordedAt: date}, // midnight, start of window
		{Score: 3, RecordedAt: date.Add(24*time.Hour - time.Millisecond)}, // end of window
	}

	summary := DailySummary(date, entries, nil)

	if summary.HighestMood != 9 || summary.LowestMood != 3 {
		t.Fatalf("boundary entries not counted: %+v", summary)
	}
}

func TestDailySummaryIdempotent(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	entries := []moodmodel.Entry{{Score: 7, RecordedAt: date.Add(time.Hour)}}

	first := DailySummary(date, entries, nil)
	second := DailySummary(date, entries, nil)

	if first != second {
		t.Fatal("identical inputs produced different summaries")
	}
}
