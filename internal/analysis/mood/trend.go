// Package mood derives trends, insights and daily summaries from a user's
// recorded mood history. Every function is pure: the reference time is an
// explicit parameter, inputs are never mutated, and identical inputs always
// produce identical output.
package mood

import (
	"math"
	"sort"
	"time"

	moodmodel "github.com/feelbetterai/backend/internal/model/mood"
)

// Trend directions.
const (
	DirectionImproving = "improving"
	DirectionDeclining = "declining"
	DirectionStable    = "stable"
)

// Trend describes the week-over-week movement of a user's mood.
type Trend struct {
	Direction string  `json:"direction"`
	Change    float64 `json:"change"`
	Period    string  `json:"period"`
}

// CalculateTrend compares the mean mood of the last seven days against the
// seven days before that, relative to now. Changes within ±5% read as stable.
func CalculateTrend(history []moodmodel.Entry, now time.Time) Trend {
	if len(history) < 2 {
		return Trend{Direction: DirectionStable, Change: 0, Period: "insufficient data"}
	}

	sorted := make([]moodmodel.Entry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	weekAgo := now.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := now.Add(-14 * 24 * time.Hour)

	var lastWeek, previousWeek []moodmodel.Entry
	for _, entry := range sorted {
		switch {
		case !entry.RecordedAt.Before(weekAgo):
			lastWeek = append(lastWeek, entry)
		case !entry.RecordedAt.Before(twoWeeksAgo):
			previousWeek = append(previousWeek, entry)
		}
	}

	if len(lastWeek) == 0 || len(previousWeek) == 0 {
		return Trend{Direction: DirectionStable, Change: 0, Period: "this week"}
	}

	lastWeekAvg := averageScore(lastWeek)
	previousWeekAvg := averageScore(previousWeek)

	change := (lastWeekAvg - previousWeekAvg) / previousWeekAvg * 100

	direction := DirectionStable
	if change > 5 {
		direction = DirectionImproving
	} else if change < -5 {
		direction = DirectionDeclining
	}

	return Trend{
		Direction: direction,
		Change:    math.Abs(change),
		Period:    "this week vs last week",
	}
}

func averageScore(entries []moodmodel.Entry) float64 {
	sum := 0.0
	for _, entry := range entries {
		sum += entry.Score
	}
	return sum / float64(len(entries))
}
