package mood

import (
	"fmt"
	"sort"
	"time"

	moodmodel "github.com/feelbetterai/backend/internal/model/mood"
)

// Insight types.
const (
	InsightPattern     = "pattern"
	InsightImprovement = "improvement"
	InsightConcern     = "concern"
	InsightMilestone   = "milestone"
)

// Insight is a derived qualitative observation about mood history.
type Insight struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// GenerateInsights inspects mood history and session stats for notable
// patterns. The four checks are independent; zero to four insights come back
// in no guaranteed order.
func GenerateInsights(history []moodmodel.Entry, sessions []moodmodel.SessionStats, now time.Time) []Insight {
	insights := []Insight{}

	if len(history) == 0 {
		return insights
	}

	if insight, ok := patternInsight(history, sessions); ok {
		insights = append(insights, insight)
	}

	trend := CalculateTrend(history, now)
	if trend.Direction == DirectionImproving && trend.Change > 10 {
		insights = append(insights, Insight{
			Type:        InsightImprovement,
			Title:       "Consistent progress this week",
			Description: fmt.Sprintf("Your overall mood has improved by %.1f%% with regular check-ins.", trend.Change),
			Confidence:  0.8,
		})
	}

	if insight, ok := concernInsight(history); ok {
		insights = append(insights, insight)
	}

	if streak := highMoodStreak(history); streak >= 3 {
		insights = append(insights, Insight{
			Type:        InsightMilestone,
			Title:       fmt.Sprintf("%d days of positive mood!", streak),
			Description: "You've maintained a positive mood for several days. That's wonderful progress!",
			Confidence:  0.9,
		})
	}

	return insights
}

// patternInsight compares morning sessions (start hour 6-12) against evening
// sessions (18-23). It only speaks up with at least three recent mood entries
// and two sessions on each side of the comparison.
func patternInsight(history []moodmodel.Entry, sessions []moodmodel.SessionStats) (Insight, bool) {
	recent := lastN(history, 7)
	if len(recent) < 3 {
		return Insight{}, false
	}

	var morning, evening []moodmodel.SessionStats
	for _, session := range sessions {
		hour := session.StartTime.Hour()
		switch {
		case hour >= 6 && hour <= 12:
			morning = append(morning, session)
		case hour >= 18 && hour <= 23:
			evening = append(evening, session)
		}
	}

	if len(morning) < 2 || len(evening) < 2 {
		return Insight{}, false
	}

	if sessionAverage(morning) > sessionAverage(evening)+1 {
		return Insight{
			Type:        InsightPattern,
			Title:       "Morning conversations help your mood",
			Description: "You tend to feel better when you chat with me in the morning versus evening sessions.",
			Confidence:  0.7,
		}, true
	}

	return Insight{}, false
}

func concernInsight(history []moodmodel.Entry) (Insight, bool) {
	low := 0
	for _, entry := range lastN(history, 5) {
		if entry.Score <= 3 {
			low++
		}
	}
	if low < 3 {
		return Insight{}, false
	}
	return Insight{
		Type:        InsightConcern,
		Title:       "Consider additional support",
		Description: "Your mood has been consistently low recently. It might help to talk to a professional counselor.",
		Confidence:  0.6,
	}, true
}

// highMoodStreak counts consecutive entries scoring 7 or above, newest first,
// looking at most 14 entries back. The streak counts samples, not calendar
// days: sparse histories can span more than 14 days of real time.
func highMoodStreak(history []moodmodel.Entry) int {
	sorted := make([]moodmodel.Entry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
	})
	if len(sorted) > 14 {
		sorted = sorted[:14]
	}

	streak := 0
	for _, entry := range sorted {
		if entry.Score < 7 {
			break
		}
		streak++
	}
	return streak
}

// lastN returns the trailing n entries in natural append order.
func lastN(history []moodmodel.Entry, n int) []moodmodel.Entry {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func sessionAverage(sessions []moodmodel.SessionStats) float64 {
	sum := 0.0
	for _, session := range sessions {
		mood := session.AverageMood
		if mood == 0 {
			mood = 5
		}
		sum += mood
	}
	return sum / float64(len(sessions))
}
