// Package dashboard assembles the mood dashboard payload: trend, insights
// and daily summaries computed by the pure analysis core over persisted
// history.
package dashboard

import (
	"context"
	"fmt"
	"time"

	analysis "github.com/feelbetterai/backend/internal/analysis/mood"
	"github.com/feelbetterai/backend/internal/model/chat"
	moodmodel "github.com/feelbetterai/backend/internal/model/mood"
	"github.com/feelbetterai/backend/internal/store"
)

// historyWindow is how far back the dashboard reads mood entries.
const historyWindow = 30 * 24 * time.Hour

// TodayStats summarizes the current day's activity.
type TodayStats struct {
	Sessions     int `json:"sessions"`
	TotalMinutes int `json:"totalTime"`
	MessageCount int `json:"messageCount"`
}

// Dashboard is the payload served to the mood dashboard view.
type Dashboard struct {
	Trend          analysis.Trend     `json:"trend"`
	Insights       []analysis.Insight `json:"insights"`
	DailySummaries []analysis.Summary `json:"dailySummaries"`
	AverageMood    float64            `json:"averageMood"`
	TodayStats     TodayStats         `json:"todayStats"`
}

// Service reads persisted history and runs the analysis core over it.
type Service struct {
	store store.Store
}

// NewService wires the dashboard service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Build assembles the dashboard for a user as of now.
func (s *Service) Build(ctx context.Context, userID string, now time.Time) (Dashboard, error) {
	entries, err := s.store.ListMoodEntries(ctx, userID, now.Add(-historyWindow))
	if err != nil {
		return Dashboard{}, fmt.Errorf("load mood entries: %w", err)
	}

	sessions, err := s.store.ListUserSessions(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load sessions: %w", err)
	}

	stats := make([]moodmodel.SessionStats, 0, len(sessions))
	for _, session := range sessions {
		stats = append(stats, moodmodel.SessionStats{
			AverageMood:  session.AverageMood,
			MessageCount: session.MessageCount,
			StartTime:    session.StartTime,
		})
	}

	// Daily summaries for the trailing seven days, oldest first.
	summaries := make([]analysis.Summary, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.Add(-time.Duration(i) * 24 * time.Hour)
		summaries = append(summaries, analysis.DailySummary(day, entries, stats))
	}

	year, month, day := now.Date()
	startOfToday := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	averageMood, err := s.store.AverageMood(ctx, userID, startOfToday)
	if err != nil {
		return Dashboard{}, fmt.Errorf("average mood: %w", err)
	}

	return Dashboard{
		Trend:          analysis.CalculateTrend(entries, now),
		Insights:       analysis.GenerateInsights(entries, stats, now),
		DailySummaries: summaries,
		AverageMood:    averageMood,
		TodayStats:     todayStats(sessions, startOfToday),
	}, nil
}

func todayStats(sessions []chat.Session, startOfToday time.Time) TodayStats {
	stats := TodayStats{}
	for _, session := range sessions {
		if session.StartTime.Before(startOfToday) {
			continue
		}
		stats.Sessions++
		stats.MessageCount += session.MessageCount
		if session.EndTime != nil {
			stats.TotalMinutes += int(session.EndTime.Sub(session.StartTime).Minutes())
		}
	}
	return stats
}
